package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/settings/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/notification"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults_AreValid(t *testing.T) {
	s := domain.Defaults()

	require.NoError(t, s.Validate())
	assert.Equal(t, value_objects.PriorityMedium, s.Priority())
	assert.Equal(t, time.Sunday, s.FirstWeekday())
	assert.Equal(t, time.UTC, s.Location())
	assert.Equal(t, notification.AllCategories(), s.Categories())
}

func TestSettings_Set(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
		check   func(t *testing.T, s domain.Settings)
	}{
		{
			name:  "week start",
			key:   "preferences.week_start",
			value: "Monday",
			check: func(t *testing.T, s domain.Settings) { assert.Equal(t, time.Monday, s.FirstWeekday()) },
		},
		{
			name:  "default priority",
			key:   "preferences.default_priority",
			value: "high",
			check: func(t *testing.T, s domain.Settings) { assert.Equal(t, value_objects.PriorityHigh, s.Priority()) },
		},
		{
			name:  "toggle off overdue",
			key:   "notifications.overdue",
			value: "false",
			check: func(t *testing.T, s domain.Settings) { assert.False(t, s.Categories().Overdue) },
		},
		{
			name:  "timezone",
			key:   "preferences.timezone",
			value: "Europe/Berlin",
			check: func(t *testing.T, s domain.Settings) { assert.Equal(t, "Europe/Berlin", s.Location().String()) },
		},
		{name: "bad theme", key: "preferences.theme", value: "neon", wantErr: domain.ErrInvalidTheme},
		{name: "bad timezone", key: "preferences.timezone", value: "Mars/Olympus", wantErr: domain.ErrInvalidTimezone},
		{name: "empty timezone", key: "preferences.timezone", value: "", wantErr: domain.ErrInvalidTimezone},
		{name: "bad email", key: "profile.email", value: "nope", wantErr: domain.ErrInvalidEmail},
		{name: "bad bool", key: "preferences.compact_view", value: "maybe", wantErr: domain.ErrInvalidBoolSetting},
		{name: "bad priority", key: "preferences.default_priority", value: "urgent", wantErr: value_objects.ErrInvalidPriority},
		{name: "unknown key", key: "privacy.share", value: "true", wantErr: domain.ErrUnknownSetting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.Defaults()
			err := s.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, domain.Defaults(), s)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestSettings_GetCoversEveryKey(t *testing.T) {
	s := domain.Defaults()
	for _, key := range domain.Keys() {
		_, err := s.Get(key)
		assert.NoError(t, err, key)
	}
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, domain.ErrUnknownSetting)
}

func TestSettings_Formatting(t *testing.T) {
	s := domain.Defaults()
	d := value_objects.NewDate(2025, time.January, 5)
	at := time.Date(2025, 1, 5, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "01/05/2025", s.FormatDate(d))
	assert.Equal(t, "2:30 PM", s.FormatTime(at))

	require.NoError(t, s.Set("preferences.date_format", "dd/MM/yyyy"))
	require.NoError(t, s.Set("preferences.time_format", "24h"))
	assert.Equal(t, "05/01/2025", s.FormatDate(d))
	assert.Equal(t, "14:30", s.FormatTime(at))
}

func TestSettings_ValidateJoinsErrors(t *testing.T) {
	s := domain.Defaults()
	s.Preferences.Theme = "neon"
	s.Preferences.WeekStart = "friday"

	err := s.Validate()

	assert.ErrorIs(t, err, domain.ErrInvalidTheme)
	assert.ErrorIs(t, err, domain.ErrInvalidWeekStart)
}
