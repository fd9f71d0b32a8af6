package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Audit events.
const (
	EventLogin         = "login"
	EventAdminLogin    = "admin_login"
	EventRegister      = "register"
	EventPasswordReset = "password_reset"
	EventAdminAction   = "admin_action"
)

// AuditLog logs security-relevant events with the acting user and client IP.
func AuditLog(log zerolog.Logger, r *http.Request, event, userID string, success bool, errMsg string) {
	ev := log.Info()
	if !success {
		ev = log.Warn()
	}
	ev.
		Str("event", event).
		Str("user_id", userID).
		Str("ip", r.RemoteAddr).
		Str("request_id", middleware.GetReqID(r.Context())).
		Bool("success", success)
	if errMsg != "" {
		ev.Str("error", errMsg)
	}
	ev.Msg("audit")
}
