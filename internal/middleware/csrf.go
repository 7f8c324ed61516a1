package middleware

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/csrf"
	"github.com/hertz-contrib/sessions"
	"github.com/hertz-contrib/sessions/cookie"

	"OnShift/config"
)

// SessionMiddleware backs the CSRF token store. Only mounted when
// CSRF_ENABLED is set; the API is token-authenticated and cookie-based
// deployments opt in.
func SessionMiddleware() app.HandlerFunc {
	store := cookie.NewStore([]byte(config.Cfg.CSRFSecret))
	return sessions.New("csrf-session", store)
}

// CSRFMiddleware must be mounted after SessionMiddleware.
func CSRFMiddleware() app.HandlerFunc {
	return csrf.New(
		csrf.WithSecret(config.Cfg.SessionSecret),
	)
}
