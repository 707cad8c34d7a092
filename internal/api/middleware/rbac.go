package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorsage/tutor-sage-server/internal/api/metrics"
	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
)

// RoleChecker answers whether a stored user holds a role.
type RoleChecker interface {
	HasRole(ctx context.Context, email string, role domain.Role) (bool, error)
}

// RequireRole admits the request only when the authenticated user's stored
// role is exactly role. The role is looked up on every request, never read
// from the token. Must run after Authenticate.
func RequireRole(users RoleChecker, role domain.Role) echo.MiddlewareFunc {
	gate := string(role)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return forbidden(c, gate)
			}

			allowed, err := users.HasRole(c.Request().Context(), identity.Email, role)
			if err != nil {
				return err
			}
			if !allowed {
				return forbidden(c, gate)
			}

			metrics.GateDecisionsTotal.WithLabelValues(gate, "allow").Inc()
			return next(c)
		}
	}
}

// RequireSelf admits the request only when the authenticated email equals the
// named path parameter exactly. Must run after Authenticate.
func RequireSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok || identity.Email != c.Param(param) {
				return forbidden(c, "self")
			}

			metrics.GateDecisionsTotal.WithLabelValues("self", "allow").Inc()
			return next(c)
		}
	}
}

func forbidden(c echo.Context, gate string) error {
	metrics.GateDecisionsTotal.WithLabelValues(gate, "deny").Inc()
	return c.JSON(http.StatusForbidden, map[string]string{"error": domain.ErrForbidden.Error()})
}
