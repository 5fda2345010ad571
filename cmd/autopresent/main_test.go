package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	t.Run("it should render the requested views", func(t *testing.T) {
		// WHEN
		out, err := execute(t, "render", "posts", "--per-page", "3", "--log-level", "error")

		// THEN
		require.NoError(t, err)
		assert.Contains(t, out, "<h2>Notes on the Analytical Engine</h2>")
		assert.Contains(t, out, "by Ada Lovelace")
		assert.Contains(t, out, "page 1 of 1")
		assert.NotContains(t, out, "<ul>")
	})

	t.Run("it should describe the wiring", func(t *testing.T) {
		// WHEN
		out, err := execute(t, "describe", "--log-level", "error")

		// THEN
		require.NoError(t, err)
		assert.Contains(t, out, "* Presenters:")
		assert.Contains(t, out, "presenters.PostPresenter")
		assert.Contains(t, out, "* Decorators:")
		assert.Contains(t, out, "enrichedactivity")
	})

	t.Run("it should reject unknown views", func(t *testing.T) {
		// WHEN
		_, err := execute(t, "render", "sidebar", "--log-level", "error")

		// THEN
		assert.Error(t, err)
	})

	t.Run("it should reject invalid log levels", func(t *testing.T) {
		// WHEN
		_, err := execute(t, "describe", "--log-level", "loud")

		// THEN
		assert.ErrorContains(t, err, `invalid log level "loud"`)
	})
}
