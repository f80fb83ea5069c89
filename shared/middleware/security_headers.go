package middleware

import (
	"net/http"
)

// ApiCSP is the policy for a JSON-only API: nothing may be loaded or framed.
const ApiCSP = "default-src 'none'; frame-ancestors 'none'"

// SecurityHeadersWithCSP adds security headers with custom Content-Security-Policy.
// Strict-Transport-Security is only sent when isHTTPS is set, CSP only when csp is not empty.
func SecurityHeadersWithCSP(isHTTPS bool, csp string) func(http.Handler) http.Handler {
	static := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
		"Permissions-Policy":     "camera=(), microphone=(), geolocation=(), payment=()",
	}
	if csp != "" {
		static["Content-Security-Policy"] = csp
	}
	if isHTTPS {
		static["Strict-Transport-Security"] = "max-age=31536000; includeSubDomains"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			for k, v := range static {
				headers.Set(k, v)
			}
			next.ServeHTTP(w, r)
		})
	}
}
