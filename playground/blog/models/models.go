// Package models is the domain of the sample blog.
package models

import (
	"time"

	"github.com/a-peyrard/autopresenter"
)

type (
	// RelationSet holds the relations loaded on a model.
	RelationSet struct {
		loaded map[string]any
	}

	User struct {
		autopresenter.BaseModel
		ID        int
		FirstName string
		LastName  string
		Email     string
	}

	Post struct {
		autopresenter.BaseModel
		RelationSet
		ID          int
		Title       string
		Body        string
		PublishedAt time.Time
	}

	Comment struct {
		autopresenter.BaseModel
		RelationSet
		ID   int
		Body string
	}
)

func (r *RelationSet) Relations() map[string]any {
	return r.loaded
}

func (r *RelationSet) SetRelation(name string, value any) {
	if r.loaded == nil {
		r.loaded = make(map[string]any)
	}
	r.loaded[name] = value
}

// Relation returns a loaded relation, nil when it is not loaded.
func (r *RelationSet) Relation(name string) any {
	return r.loaded[name]
}
