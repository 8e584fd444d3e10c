package pocketbuddy

import (
	"context"
	"strings"
)

// SeedService bootstraps demo data.
type SeedService struct {
	client *Client
}

// SeedResult reports the seeding outcome.
type SeedResult struct {
	Message       string `json:"message"`
	AdminEmail    string `json:"admin_email,omitempty"`
	AdminPassword string `json:"admin_password,omitempty"`

	// AlreadySeeded is true when the backend reported existing data instead
	// of creating anything. Seeding is idempotent; repeat calls never
	// duplicate records.
	AlreadySeeded bool `json:"-"`
}

// Seed creates the initial admin account and sample grades, classes and
// subjects. Safe to call repeatedly.
func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	var res SeedResult
	if err := s.client.post(ctx, "/seed", nil, &res); err != nil {
		return nil, err
	}
	// The backend signals the no-op case only through its message
	// ("Dáta už existujú") and by omitting the admin credentials.
	res.AlreadySeeded = res.AdminEmail == "" && strings.Contains(res.Message, "existuj")
	return &res, nil
}
