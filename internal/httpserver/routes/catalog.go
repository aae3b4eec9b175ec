package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/learntube/internal/httpserver/deps"
	"github.com/MrSnakeDoc/learntube/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/learntube/internal/httpserver/mw"
)

func init() { Register(registerCatalog) }

func registerCatalog(r chi.Router, d deps.Deps) {
	r.Route("/api", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))

		r.Get("/courses", handlers.ListCourses(d))
		r.Get("/courses/{id}", handlers.GetCourse(d))
		r.Get("/categories", handlers.ListCategories(d))
		r.Get("/overview", handlers.Overview(d))

		r.Get("/bookmarks", handlers.ListBookmarks(d))
		r.Post("/bookmarks/{id}/toggle", handlers.ToggleBookmark(d))

		r.Put("/session/search", handlers.SetSearch(d))
		r.Put("/session/filter", handlers.SetFilter(d))
		r.Get("/session/view", handlers.SessionView(d))
	})
}
