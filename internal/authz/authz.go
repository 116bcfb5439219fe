// Package authz holds the single authorization predicate applied at every
// enforcement point, so the same claims and requirement always resolve to
// the same decision regardless of tier.
package authz

import (
	"strings"

	"github.com/yaleims/api/internal/token"
)

// Authorize reports whether the claims' capability set intersects the
// required role set. An empty requirement denies: routes must name who may
// reach them.
func Authorize(claims *token.Claims, required []string) bool {
	if claims == nil || len(required) == 0 {
		return false
	}
	granted := make(map[string]struct{}, len(claims.MRoles))
	for _, role := range claims.MRoles {
		granted[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}
	for _, role := range required {
		if _, ok := granted[role]; ok {
			return true
		}
	}
	return false
}

func normalizeRoles(roles []string) []string {
	unique := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		role = strings.TrimSpace(strings.ToLower(role))
		if role == "" {
			continue
		}
		unique[role] = struct{}{}
	}
	normalized := make([]string, 0, len(unique))
	for role := range unique {
		normalized = append(normalized, role)
	}
	return normalized
}
