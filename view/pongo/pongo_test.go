package pongo

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/a-peyrard/autopresenter/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type card struct {
	Title string
	Tags  []string
}

var templates = fstest.MapFS{
	"home.html": {Data: []byte(`{{ site }}: {% for post in posts %}[{{ post.Title }}]{% endfor %}`)},
	"card.tpl":  {Data: []byte(`{{ card.Title|upper }}`)},
}

func TestEngine(t *testing.T) {
	t.Run("it should require a template source", func(t *testing.T) {
		// WHEN
		_, err := New()

		// THEN
		assert.EqualError(t, err, "a template directory or file system must be given")
	})

	t.Run("it should render named templates with the extension appended", func(t *testing.T) {
		// GIVEN
		engine := MustNew(WithFS(templates))
		var buf bytes.Buffer

		// WHEN
		err := engine.Render(&buf, "home", map[string]any{
			"site":  "blog",
			"posts": []any{&card{Title: "first"}, card{Title: "second"}},
		})

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "blog: [first][second]", buf.String())
	})

	t.Run("it should use the configured extension", func(t *testing.T) {
		// GIVEN
		engine := MustNew(WithFS(templates), WithExtension("tpl"))
		var buf bytes.Buffer

		// WHEN
		err := engine.Render(&buf, "card", map[string]any{"card": card{Title: "hello"}})

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "HELLO", buf.String())
	})

	t.Run("it should expose globals to every template", func(t *testing.T) {
		// GIVEN
		engine := MustNew(WithFS(templates), WithGlobals(map[string]any{"site": "global"}))
		var buf bytes.Buffer

		// WHEN
		err := engine.Render(&buf, "home", map[string]any{"posts": []any{}})

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "global: ", buf.String())
	})

	t.Run("it should fail on unknown templates", func(t *testing.T) {
		// GIVEN
		engine := MustNew(WithFS(templates))

		// WHEN
		err := engine.Render(&bytes.Buffer{}, "missing", nil)

		// THEN
		assert.ErrorContains(t, err, `unable to load template "missing.html"`)
	})

	t.Run("it should render inline templates", func(t *testing.T) {
		// GIVEN
		engine := MustNew(WithFS(templates))
		var buf bytes.Buffer

		// WHEN
		err := engine.RenderString(&buf, `{{ card.Tags|join:", " }}`, map[string]any{
			"card": &card{Tags: []string{"go", "templates"}},
		})

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "go, templates", buf.String())
	})

	t.Run("it should serve as a view engine", func(t *testing.T) {
		// GIVEN
		factory := view.NewFactory(MustNew(WithFS(templates))).Share("site", "shared")
		var buf bytes.Buffer

		// WHEN
		err := factory.Make("home", map[string]any{"posts": []any{card{Title: "a"}}}).Render(&buf)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "shared: [a]", buf.String())
	})
}
