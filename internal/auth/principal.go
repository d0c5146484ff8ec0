// Package auth resolves the requester role for every request. The role
// only ever narrows what a response contains; a failed or absent token
// degrades to anonymous instead of failing the request.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dpp40/dpp-go-components/internal/common"
	"github.com/dpp40/dpp-go-components/internal/common/model"
)

type contextKey int

const roleKey contextKey = iota

// RoleFromContext returns the resolved requester role, anonymous if the
// middleware never ran.
func RoleFromContext(ctx context.Context) model.Role {
	if role, ok := ctx.Value(roleKey).(model.Role); ok {
		return role
	}
	return model.RoleAnonymous
}

// WithRole returns a context carrying the given role. Used by tests and
// internal callers that bypass the HTTP middleware.
func WithRole(ctx context.Context, role model.Role) context.Context {
	return context.WithValue(ctx, roleKey, role)
}

// Middleware extracts the role claim from a bearer token signed with the
// shared secret. With auth disabled the role may be picked via the
// `role` query parameter, which serves local development and demos.
func Middleware(cfg common.AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := model.RoleAnonymous
			if cfg.Enabled {
				role = roleFromToken(r.Header.Get("Authorization"), cfg.Secret)
			} else if q := r.URL.Query().Get("role"); q != "" {
				role = model.ParseRole(q)
			}
			next.ServeHTTP(w, r.WithContext(WithRole(r.Context(), role)))
		})
	}
}

// roleFromToken validates the bearer token and reads its role claim.
// Anything that does not verify collapses to anonymous.
func roleFromToken(header string, secret string) model.Role {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return model.RoleAnonymous
	}
	raw := strings.TrimSpace(header[len(prefix):])

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return model.RoleAnonymous
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.RoleAnonymous
	}
	claim, _ := claims["role"].(string)
	return model.ParseRole(claim)
}
