package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureOptions returns the header policy for the HTML pages. Scripts and styles come from
// /static only; HSTS is sent outside development.
func SecureOptions(isDevelopment bool) secure.Options {
	opts := secure.Options{
		IsDevelopment:         isDevelopment,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		ContentSecurityPolicy: "default-src 'self'; img-src 'self' data:; form-action 'self'; frame-ancestors 'none'",
		ReferrerPolicy:        "same-origin",
		PermissionsPolicy:     "camera=(), microphone=(), geolocation=()",
	}
	if !isDevelopment {
		opts.STSSeconds = 180 * 24 * 3600
		opts.STSIncludeSubdomains = true
	}
	return opts
}

func NewSecure(opts secure.Options) func(next http.Handler) http.Handler {
	return secure.New(opts).Handler
}
