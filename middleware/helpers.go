package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Dosada05/court-finder/models"
)

type contextKey string

const adminContextKey contextKey = "admin"

func withAdmin(ctx context.Context, scope *models.AdminScope) context.Context {
	return context.WithValue(ctx, adminContextKey, scope)
}

// AdminFromContext returns nil for anonymous requests.
func AdminFromContext(ctx context.Context) *models.AdminScope {
	scope, _ := ctx.Value(adminContextKey).(*models.AdminScope)
	return scope
}

// IsSuperAdmin reports whether the request carried the super-admin secret
// or a super-admin token.
func IsSuperAdmin(ctx context.Context) bool {
	scope := AdminFromContext(ctx)
	return scope != nil && scope.SuperAdmin
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
