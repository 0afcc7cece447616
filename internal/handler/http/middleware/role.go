package middleware

import (
	"net/http"

	"github.com/corehr/hr-payroll-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func rolesFromClaims(claims map[string]interface{}) []string {
	switch raw := claims["roles"].(type) {
	case []string:
		return raw
	case []interface{}:
		roles := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok {
				roles = append(roles, s)
			}
		}
		return roles
	}
	return nil
}

func requireAnyRole(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Forbidden(w, "Insufficient permissions")
				return
			}

			roles := rolesFromClaims(claims)
			for _, role := range roles {
				for _, want := range allowed {
					if role == want {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			response.Forbidden(w, "Insufficient permissions")
		})
	}
}

// RequireElevated admits HR staff and admins.
func RequireElevated(next http.Handler) http.Handler {
	return requireAnyRole("admin", "hr")(next)
}

// RequireManager admits HR staff, admins and line managers; services narrow
// line managers to their own reports.
func RequireManager(next http.Handler) http.Handler {
	return requireAnyRole("admin", "hr", "line_manager")(next)
}
