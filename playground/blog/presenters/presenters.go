// Package presenters holds the view side of the blog models.
package presenters

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/a-peyrard/autopresenter"
	"github.com/a-peyrard/autopresenter/playground/blog/models"
)

const excerptLength = 60

type (
	Clock interface {
		Now() time.Time
	}

	ClockFunc func() time.Time

	UserPresenter struct {
		autopresenter.Base[*models.User]
	}

	PostPresenter struct {
		autopresenter.Base[*models.Post]
		clock Clock
	}

	CommentPresenter struct {
		autopresenter.Base[*models.Comment]
	}
)

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock is the wall clock.
func SystemClock() Clock {
	return ClockFunc(time.Now)
}

func NewUserPresenter(user *models.User) *UserPresenter {
	return &UserPresenter{Base: autopresenter.Wrap(user)}
}

func (p *UserPresenter) DisplayName() string {
	return strings.TrimSpace(p.Model.FirstName + " " + p.Model.LastName)
}

func (p *UserPresenter) Initials() string {
	var initials strings.Builder
	for _, part := range []string{p.Model.FirstName, p.Model.LastName} {
		if r, _ := utf8.DecodeRuneInString(part); r != utf8.RuneError {
			initials.WriteRune(r)
		}
	}
	return strings.ToUpper(initials.String())
}

func NewPostPresenter(post *models.Post, clock Clock) *PostPresenter {
	return &PostPresenter{Base: autopresenter.Wrap(post), clock: clock}
}

func (p *PostPresenter) Title() string {
	return p.Model.Title
}

func (p *PostPresenter) Excerpt() string {
	body := strings.Join(strings.Fields(p.Model.Body), " ")
	if utf8.RuneCountInString(body) <= excerptLength {
		return body
	}
	runes := []rune(body)
	return strings.TrimSpace(string(runes[:excerptLength])) + "..."
}

// Published renders the publication date relative to the clock.
func (p *PostPresenter) Published() string {
	days := int(p.clock.Now().Sub(p.Model.PublishedAt).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

func (p *PostPresenter) Author() any {
	return p.Model.Relation("author")
}

func (p *PostPresenter) Comments() any {
	return p.Model.Relation("comments")
}

func NewCommentPresenter(comment *models.Comment) *CommentPresenter {
	return &CommentPresenter{Base: autopresenter.Wrap(comment)}
}

func (p *CommentPresenter) Body() string {
	return p.Model.Body
}

func (p *CommentPresenter) Author() any {
	return p.Model.Relation("author")
}
