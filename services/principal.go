package services

import (
	"strings"

	"github.com/Dosada05/sports-portal/models"
)

const RoleAdmin = "admin"

// Principal is the caller identity extracted from the access token.
type Principal struct {
	Email string
	Role  string
}

func (p Principal) IsAdmin() bool {
	return strings.EqualFold(p.Role, RoleAdmin)
}

// authorizeManager allows admins and the event managers listed on the match.
func authorizeManager(m *models.Match, p Principal) error {
	if strings.TrimSpace(p.Email) == "" {
		return ErrAuthenticationRequired
	}
	if p.IsAdmin() || m.HasManager(p.Email) {
		return nil
	}
	return ErrUnauthorized
}

func requireAdmin(p Principal) error {
	if strings.TrimSpace(p.Email) == "" {
		return ErrAuthenticationRequired
	}
	if !p.IsAdmin() {
		return ErrUnauthorized
	}
	return nil
}
