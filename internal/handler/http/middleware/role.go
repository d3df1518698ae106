package middleware

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/go-chi/jwtauth/v5"
	"github.com/uniadmin/payroll-backend-go/internal/handler/http/response"
)

// RequireRole allows the request through when the token's role is one of roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, response.ErrInsufficientRole)
				return
			}

			role, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, response.ErrInsufficientRole)
				return
			}

			if !slices.Contains(roles, role) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: role '%s' is not allowed", role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
