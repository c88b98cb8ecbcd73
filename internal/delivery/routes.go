package delivery

import (
	"github.com/go-chi/chi/v5"

	"meetscribe/internal/ports"
)

func RegisterRoutes(r chi.Router, hAuth *AuthHandler, auth ports.AuthService, hMeetings *MeetingHandler) {

	// public
	r.Post("/api/auth/register", hAuth.Register)
	r.Post("/api/auth/login", hAuth.Login)
	r.Get("/file/{name}", hMeetings.File)

	// owner-scoped
	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(auth))
		pr.Post("/api/meetings/upload", hMeetings.Upload)
		pr.Get("/api/meetings", hMeetings.List)
		pr.Get("/api/meetings/{id}", hMeetings.Get)
	})
}
