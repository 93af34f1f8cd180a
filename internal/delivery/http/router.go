package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"schoollink/internal/delivery/http/controllers"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Auth     *controllers.AuthController
	Forms    *controllers.FormController
	Events   *controllers.EventController
	Settings *controllers.SettingsController
	Health   *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes.
// requireAuth wraps every route that needs a signed-in user.
func NewRouter(c Controllers, requireAuth func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("GET /auth/session", c.Auth.Session)
	mux.HandleFunc("POST /auth/password", requireAuth(c.Auth.ChangePassword))
	mux.HandleFunc("POST /auth/tenant", requireAuth(c.Auth.JoinTenant))
	mux.HandleFunc("POST /auth/logout", requireAuth(c.Auth.Logout))

	// Event form
	mux.HandleFunc("GET /forms/options", requireAuth(c.Forms.Options))
	mux.HandleFunc("POST /forms", requireAuth(c.Forms.Open))
	mux.HandleFunc("GET /forms/{formID}", requireAuth(c.Forms.Get))
	mux.HandleFunc("PATCH /forms/{formID}", requireAuth(c.Forms.Patch))
	mux.HandleFunc("DELETE /forms/{formID}", requireAuth(c.Forms.Cancel))
	mux.HandleFunc("POST /forms/{formID}/submit", requireAuth(c.Forms.Submit))
	mux.HandleFunc("POST /forms/{formID}/delete", requireAuth(c.Forms.RequestDelete))
	mux.HandleFunc("POST /forms/{formID}/delete/confirm", requireAuth(c.Forms.ConfirmDelete))
	mux.HandleFunc("POST /forms/{formID}/delete/cancel", requireAuth(c.Forms.CancelDelete))

	// Events
	mux.HandleFunc("GET /events", requireAuth(c.Events.List))
	mux.HandleFunc("GET /events.ics", requireAuth(c.Events.ExportICS))
	mux.HandleFunc("GET /events/{eventID}", requireAuth(c.Events.Get))
	mux.HandleFunc("GET /calendar/{year}/{month}", requireAuth(c.Events.Month))

	// Settings
	mux.HandleFunc("GET /settings", requireAuth(c.Settings.Get))
	mux.HandleFunc("PATCH /settings", requireAuth(c.Settings.Update))

	mux.HandleFunc("GET /health", c.Health.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
