// Package blog is a sample application decorating blog models before rendering them with pongo2.
package blog

import (
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/a-peyrard/autopresenter/activity"
	"github.com/a-peyrard/autopresenter/collection"
	"github.com/a-peyrard/autopresenter/container"
	"github.com/a-peyrard/autopresenter/playground/blog/models"
	"github.com/a-peyrard/autopresenter/playground/blog/presenters"
	"gopkg.in/yaml.v3"
)

var (
	//go:embed fixtures.yaml
	fixtures []byte

	//go:embed templates
	templates embed.FS
)

type (
	// Fixtures is the sample content of the blog, with every relation loaded.
	Fixtures struct {
		Users      map[int]*models.User
		Posts      []*models.Post
		Activities []*activity.Enriched
	}

	fixtureFile struct {
		Users []struct {
			ID        int    `yaml:"id"`
			FirstName string `yaml:"first_name"`
			LastName  string `yaml:"last_name"`
			Email     string `yaml:"email"`
		} `yaml:"users"`
		Posts []struct {
			ID          int       `yaml:"id"`
			Author      int       `yaml:"author"`
			Title       string    `yaml:"title"`
			Body        string    `yaml:"body"`
			PublishedAt time.Time `yaml:"published_at"`
		} `yaml:"posts"`
		Comments []struct {
			ID     int    `yaml:"id"`
			Post   int    `yaml:"post"`
			Author int    `yaml:"author"`
			Body   string `yaml:"body"`
		} `yaml:"comments"`
		Activities []struct {
			Actor  int    `yaml:"actor"`
			Verb   string `yaml:"verb"`
			Object int    `yaml:"object"`
		} `yaml:"activities"`
	}
)

// Templates returns the pongo2 templates of the blog.
func Templates() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Register binds the blog presenters, and the clock they depend on, in the container.
func Register(c *container.Container, clock presenters.Clock) error {
	if err := c.Supply(clock); err != nil {
		return fmt.Errorf("unable to supply the clock:\n\t%w", err)
	}
	for _, factory := range []any{
		presenters.NewUserPresenter,
		presenters.NewPostPresenter,
		presenters.NewCommentPresenter,
	} {
		if err := c.Bind(factory); err != nil {
			return fmt.Errorf("unable to bind blog presenters:\n\t%w", err)
		}
	}
	return nil
}

// LoadFixtures parses the embedded fixtures, each call returns fresh models.
func LoadFixtures() (*Fixtures, error) {
	return ParseFixtures(fixtures)
}

// ParseFixtures builds the models described by a YAML document.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unable to parse fixtures:\n\t%w", err)
	}

	result := &Fixtures{Users: make(map[int]*models.User, len(file.Users))}
	for _, u := range file.Users {
		result.Users[u.ID] = &models.User{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
	}

	posts := make(map[int]*models.Post, len(file.Posts))
	for _, p := range file.Posts {
		author, found := result.Users[p.Author]
		if !found {
			return nil, fmt.Errorf("post %d references unknown user %d", p.ID, p.Author)
		}
		post := &models.Post{ID: p.ID, Title: p.Title, Body: p.Body, PublishedAt: p.PublishedAt}
		post.SetRelation("author", author)
		post.SetRelation("comments", []any{})
		posts[p.ID] = post
		result.Posts = append(result.Posts, post)
	}

	for _, c := range file.Comments {
		post, found := posts[c.Post]
		if !found {
			return nil, fmt.Errorf("comment %d references unknown post %d", c.ID, c.Post)
		}
		author, found := result.Users[c.Author]
		if !found {
			return nil, fmt.Errorf("comment %d references unknown user %d", c.ID, c.Author)
		}
		comment := &models.Comment{ID: c.ID, Body: c.Body}
		comment.SetRelation("author", author)
		post.SetRelation("comments", append(post.Relation("comments").([]any), comment))
	}

	for _, a := range file.Activities {
		enriched := activity.New(map[string]any{"verb": a.Verb})
		if actor, found := result.Users[a.Actor]; found {
			enriched.Set("actor", actor)
		} else {
			enriched.TrackNotEnriched("actor", a.Actor)
		}
		if object, found := posts[a.Object]; found {
			enriched.Set("object", object)
		} else {
			enriched.TrackNotEnriched("object", a.Object)
		}
		result.Activities = append(result.Activities, enriched)
	}

	return result, nil
}

// Page returns a page of posts.
func (f *Fixtures) Page(page, perPage int) *collection.Paginator {
	if perPage <= 0 {
		perPage = collection.DefaultPerPage
	}
	start := min(max(page-1, 0)*perPage, len(f.Posts))
	end := min(start+perPage, len(f.Posts))

	items := make([]any, 0, end-start)
	for _, post := range f.Posts[start:end] {
		items = append(items, post)
	}
	return collection.NewPaginator(items, perPage, page, len(f.Posts))
}

// Feed returns the activities as a list ready to be bound to a view.
func (f *Fixtures) Feed() []any {
	feed := make([]any, len(f.Activities))
	for i, a := range f.Activities {
		feed[i] = a
	}
	return feed
}
