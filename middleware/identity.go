package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/court-finder/models"
)

const (
	HeaderAdminSecret = "X-Admin-Secret"
	AdminTokenTTL     = 12 * time.Hour
)

// AdminClaims are the JWT claims issued by the login endpoint.
type AdminClaims struct {
	VenueIDs   []int `json:"venue_ids"`
	SuperAdmin bool  `json:"super"`
	jwt.RegisteredClaims
}

// SecretChecker is satisfied by services.AuthService.
type SecretChecker interface {
	IsSuperAdminSecret(secret string) bool
}

func NewAdminToken(scope *models.AdminScope, secret []byte, now time.Time) (string, error) {
	claims := AdminClaims{
		VenueIDs:   scope.VenueIDs,
		SuperAdmin: scope.SuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AdminTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func parseAdminToken(raw string, secret []byte) (*models.AdminScope, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return &models.AdminScope{SuperAdmin: claims.SuperAdmin, VenueIDs: claims.VenueIDs}, nil
}

// Identify resolves the admin identity of a request. Invalid credentials
// leave the request anonymous; the Require* middlewares decide what that means.
func Identify(jwtSecret []byte, secrets SecretChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if secret := r.Header.Get(HeaderAdminSecret); secret != "" {
				if secrets != nil && secrets.IsSuperAdminSecret(secret) {
					next.ServeHTTP(w, r.WithContext(withAdmin(ctx, &models.AdminScope{SuperAdmin: true})))
					return
				}
				logger.DebugContext(ctx, "Ignoring invalid admin secret")
			}

			if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				scope, err := parseAdminToken(strings.TrimPrefix(auth, "Bearer "), jwtSecret)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(withAdmin(ctx, scope)))
					return
				}
				logger.DebugContext(ctx, "Ignoring invalid admin token", slog.Any("error", err))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSuperAdmin guards writes that only a super admin may perform.
// With enforce off it lets every request through.
func RequireSuperAdmin(enforce bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enforce {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := AdminFromContext(r.Context())
			switch {
			case scope == nil:
				writeError(w, http.StatusUnauthorized, "admin credentials required")
			case !scope.SuperAdmin:
				writeError(w, http.StatusForbidden, "super admin privileges required")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireVenueScope lets through admins allowed to edit the venue named by
// the {id} URL parameter.
func RequireVenueScope(enforce bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enforce {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := AdminFromContext(r.Context())
			if scope == nil {
				writeError(w, http.StatusUnauthorized, "admin credentials required")
				return
			}
			id, err := strconv.Atoi(chi.URLParam(r, "id"))
			if err != nil || id <= 0 {
				writeError(w, http.StatusBadRequest, "invalid id parameter")
				return
			}
			if !scope.CanEdit(id) {
				writeError(w, http.StatusForbidden, "venue is outside of the admin scope")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
