package domain

import "context"

// Repository stores the settings document.
type Repository interface {
	// Load returns nil, nil when nothing has been saved yet.
	Load(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}
