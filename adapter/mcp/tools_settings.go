package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/taskflow/internal/settings/domain"
)

type settingsSetInput struct {
	Key   string `json:"key" jsonschema:"required"`
	Value string `json:"value"`
}

func registerSettingsTools(srv *mcp.Server, h handlers) {
	srv.Tool("settings.get").
		Description("Get profile, preferences and notification settings").
		Handler(h.settings)

	srv.Tool("settings.set").
		Description("Set one setting by dotted key, for example preferences.date_format or notifications.overdue").
		Handler(h.setSetting)
}

func (h handlers) settings(ctx context.Context, _ struct{}) (*domain.Settings, error) {
	s, err := h.app.SettingsService.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (h handlers) setSetting(ctx context.Context, input settingsSetInput) (*domain.Settings, error) {
	if input.Key == "" {
		return nil, errors.New("key is required")
	}
	s, err := h.app.SettingsService.Set(ctx, input.Key, input.Value)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
