// Package permissions holds the route level access rules. Routes are matched
// by their chi pattern, so "/v1/users/{id}" covers every user id.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

type Permission struct {
	// Permissions lists the roles allowed on the route. Empty means any
	// signed in user.
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	// Skip marks public routes that need no token.
	Skip bool `json:"skip"`
}

func (p Permission) Allows(role string) bool {
	return len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	// Skip turns off authentication and authorization for every route.
	Skip bool `json:"skip"`

	index map[string]Permission
}

func key(path, method string) string {
	return strings.ToUpper(method) + " " + path
}

// FindPermissions returns the rule for a route pattern, or the zero Permission
// when the route has none.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	return r.index[key(path, method)]
}

// Parse decodes a rules document. A route listed twice is an error.
func Parse(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	permissions.index = make(map[string]Permission, len(permissions.Endpoints))

	for _, endpoint := range permissions.Endpoints {
		k := key(endpoint.Path, endpoint.Method)
		if _, exists := permissions.index[k]; exists {
			return nil, fmt.Errorf("duplicate permission for %s", k)
		}

		permissions.index[k] = endpoint
	}

	return &permissions, nil
}

// Get loads the embedded rules. It returns nil when they cannot be decoded,
// which makes the RBAC middleware refuse every protected route.
func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
