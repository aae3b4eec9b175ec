package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/learntube/internal/httpserver/deps"
	"github.com/MrSnakeDoc/learntube/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/learntube/internal/httpserver/mw"
)

func init() { Register(registerOwner) }

func registerOwner(r chi.Router, d deps.Deps) {
	r.Route("/api/owner", func(r chi.Router) {
		r.Use(
			mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
			mw.EnforceHost(d.AllowedHosts, d.Logger),
		)

		r.With(mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.LoginBurst,
			RefillPerIPPerMin: d.LoginRefillPerMin,
			MaxEntries:        10000,
			TrustProxy:        d.TrustProxy,
			Log:               d.Logger,
		})).Post("/login", handlers.Login(d))
		r.Post("/logout", handlers.Logout(d))
		r.Get("/status", handlers.OwnerStatus(d))

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireOwner(d.Sessions, d.TrustProxy, d.Logger))

			r.Post("/drafts", handlers.PreviewDraft(d))
			r.Post("/courses", handlers.CreateCourse(d))
			r.Put("/courses/{id}", handlers.UpdateCourse(d))
			r.Delete("/courses/{id}", handlers.DeleteCourse(d))

			r.Post("/categories", handlers.AddCategory(d))
			r.Put("/categories", handlers.ReplaceCategories(d))
			r.Patch("/categories/{id}", handlers.RenameCategory(d))
			r.Delete("/categories/{id}", handlers.RemoveCategory(d))

			r.Post("/reload", handlers.Reload(d))
		})
	})
}
