package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"sponsorship-app-go/internal/config"
	"sponsorship-app-go/internal/transport/httpserver/handler"
	authmw "sponsorship-app-go/internal/transport/httpserver/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.SessionAuth) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/register", handlers.Register)
		r.Post("/auth/login", handlers.Login)
		r.Post("/auth/logout", handlers.Logout)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.Me)

			r.Get("/children", handlers.ListChildren)
			r.Post("/children", handlers.CreateChild)
			r.Get("/children/statistics", handlers.ChildrenStatistics)
			r.Get("/children/export", handlers.ExportChildren)
			r.Post("/children/import", handlers.ImportChildren)
			r.Get("/children/{id}", handlers.GetChild)
			r.Put("/children/{id}", handlers.UpdateChild)
			r.Delete("/children/{id}", handlers.ArchiveChild)

			r.Post("/children/{id}/sponsors", handlers.AttachSponsor)
			r.Delete("/children/{id}/sponsors/{sponsorId}", handlers.EndSponsorship)

			r.Get("/children/{id}/photos", handlers.ListChildPhotos)
			r.Post("/children/{id}/photos", handlers.AddChildPhoto)
			r.Put("/photos/{photoId}", handlers.UpdatePhoto)
			r.Delete("/photos/{photoId}", handlers.DeletePhoto)

			r.Get("/sponsors", handlers.ListSponsors)
			r.Post("/sponsors", handlers.CreateSponsor)
			r.Get("/sponsors/{id}", handlers.GetSponsor)
			r.Put("/sponsors/{id}", handlers.UpdateSponsor)
			r.Delete("/sponsors/{id}", handlers.DeleteSponsor)

			r.Get("/schools", handlers.ListSchools)
			r.Post("/schools", handlers.CreateSchool)
			r.Get("/schools/{id}", handlers.GetSchool)
			r.Put("/schools/{id}", handlers.UpdateSchool)
			r.Delete("/schools/{id}", handlers.DeleteSchool)

			r.Get("/proxies", handlers.ListProxies)
			r.Post("/proxies", handlers.CreateProxy)
			r.Get("/proxies/{id}", handlers.GetProxy)
			r.Put("/proxies/{id}", handlers.UpdateProxy)

			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireAdmin)

				r.Get("/auth/users", handlers.ListUsers)
				r.Post("/auth/users/{id}/approve", handlers.ApproveUser)
			})
		})
	})

	return r
}
