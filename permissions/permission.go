package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// PermissionData lists per-endpoint rules. Defaults apply by method to any route without its own entry.
type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Defaults  []Permission `json:"defaults"`
	Skip      bool         `json:"skip"`
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && rp.Method == method
	})

	if idx != -1 {
		return r.Endpoints[idx]
	}

	idx = slices.IndexFunc(r.Defaults, func(rp Permission) bool {
		return rp.Method == method
	})

	if idx != -1 {
		return r.Defaults[idx]
	}

	return Permission{}
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
