package main

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/a-peyrard/autopresenter/playground/blog"
	"github.com/a-peyrard/autopresenter/view"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const postsPerPage = 2

// newHandler routes the blog views and the decoration metrics gathered by registry.
func newHandler(app *blog.App, registry *prometheus.Registry, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(logger))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil {
			page = 1
		}
		renderView(w, r, logger, func() (*view.View, error) {
			return app.PostsView(page, postsPerPage)
		})
	})
	r.Get("/feed", func(w http.ResponseWriter, r *http.Request) {
		renderView(w, r, logger, app.FeedView)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}

// renderView renders the whole view before writing the response, a failing render only ever
// sends an error page.
func renderView(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, build func() (*view.View, error)) {
	var buf bytes.Buffer
	v, err := build()
	if err == nil {
		err = v.Render(&buf)
	}
	if err != nil {
		logger.Error().
			Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("unable to render view")
		http.Error(w, "unable to render the page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func accessLog(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("served request")
		})
	}
}
