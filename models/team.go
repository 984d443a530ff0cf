package models

import "time"

type TeamMember struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	UserID *string `json:"user_id,omitempty"`
}

type Team struct {
	ID        string       `json:"id" db:"id"`
	TeamName  string       `json:"team_name" db:"team_name"`
	Members   []TeamMember `json:"members" db:"members"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}
