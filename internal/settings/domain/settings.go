package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/notification"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
)

var (
	ErrUnknownSetting     = errors.New("unknown setting")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidTheme       = errors.New("invalid theme")
	ErrInvalidLanguage    = errors.New("invalid language")
	ErrInvalidTimezone    = errors.New("invalid timezone")
	ErrInvalidDateFormat  = errors.New("invalid date format")
	ErrInvalidTimeFormat  = errors.New("invalid time format")
	ErrInvalidWeekStart   = errors.New("invalid week start")
	ErrInvalidFrequency   = errors.New("invalid notification frequency")
	ErrInvalidBoolSetting = errors.New("invalid boolean value")
)

// Allowed values for the enumerated preferences.
var (
	Themes      = []string{"light", "dark", "system"}
	Languages   = []string{"en", "es", "fr", "de"}
	DateFormats = []string{"MM/dd/yyyy", "dd/MM/yyyy", "yyyy-MM-dd"}
	TimeFormats = []string{"12h", "24h"}
	WeekStarts  = []string{"sunday", "monday"}
	Frequencies = []string{"immediate", "hourly", "daily"}
)

// Profile is the user's profile card.
type Profile struct {
	Name  string `toml:"name" json:"name"`
	Email string `toml:"email" json:"email"`
	Bio   string `toml:"bio" json:"bio"`
}

// Preferences are display and task defaults.
type Preferences struct {
	Theme           string `toml:"theme" json:"theme"`
	Language        string `toml:"language" json:"language"`
	Timezone        string `toml:"timezone" json:"timezone"`
	DateFormat      string `toml:"date_format" json:"date_format"`
	TimeFormat      string `toml:"time_format" json:"time_format"`
	DefaultPriority string `toml:"default_priority" json:"default_priority"`
	WeekStart       string `toml:"week_start" json:"week_start"`
	CompactView     bool   `toml:"compact_view" json:"compact_view"`
}

// NotificationToggles switch notification categories on or off.
type NotificationToggles struct {
	Deadlines       bool   `toml:"deadlines" json:"deadlines"`
	Overdue         bool   `toml:"overdue" json:"overdue"`
	Completions     bool   `toml:"completions" json:"completions"`
	Recommendations bool   `toml:"recommendations" json:"recommendations"`
	Frequency       string `toml:"frequency" json:"frequency"`
}

// Settings is the complete settings document.
type Settings struct {
	Profile       Profile             `toml:"profile" json:"profile"`
	Preferences   Preferences         `toml:"preferences" json:"preferences"`
	Notifications NotificationToggles `toml:"notifications" json:"notifications"`
}

// Defaults returns the settings used before anything is saved.
func Defaults() Settings {
	return Settings{
		Profile: Profile{
			Name:  "John Doe",
			Email: "john.doe@example.com",
			Bio:   "Productivity enthusiast and task management expert",
		},
		Preferences: Preferences{
			Theme:           "system",
			Language:        "en",
			Timezone:        "UTC",
			DateFormat:      "MM/dd/yyyy",
			TimeFormat:      "12h",
			DefaultPriority: value_objects.PriorityMedium.String(),
			WeekStart:       "sunday",
		},
		Notifications: NotificationToggles{
			Deadlines:       true,
			Overdue:         true,
			Completions:     true,
			Recommendations: true,
			Frequency:       "immediate",
		},
	}
}

// Validate checks every field and joins all violations.
func (s Settings) Validate() error {
	var errs []error
	if s.Profile.Email != "" {
		if _, err := mail.ParseAddress(s.Profile.Email); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidEmail, s.Profile.Email))
		}
	}
	p := s.Preferences
	errs = append(errs,
		oneOf(ErrInvalidTheme, p.Theme, Themes),
		oneOf(ErrInvalidLanguage, p.Language, Languages),
		oneOf(ErrInvalidDateFormat, p.DateFormat, DateFormats),
		oneOf(ErrInvalidTimeFormat, p.TimeFormat, TimeFormats),
		oneOf(ErrInvalidWeekStart, p.WeekStart, WeekStarts),
		oneOf(ErrInvalidFrequency, s.Notifications.Frequency, Frequencies),
	)
	if _, err := time.LoadLocation(p.Timezone); err != nil || p.Timezone == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidTimezone, p.Timezone))
	}
	if _, err := value_objects.ParsePriority(p.DefaultPriority); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func oneOf(sentinel error, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (want one of %s)", sentinel, value, strings.Join(allowed, ", "))
}

// Keys lists every settable key in display order.
func Keys() []string {
	return []string{
		"profile.name", "profile.email", "profile.bio",
		"preferences.theme", "preferences.language", "preferences.timezone",
		"preferences.date_format", "preferences.time_format",
		"preferences.default_priority", "preferences.week_start", "preferences.compact_view",
		"notifications.deadlines", "notifications.overdue", "notifications.completions",
		"notifications.recommendations", "notifications.frequency",
	}
}

// Get returns the text form of a setting.
func (s Settings) Get(key string) (string, error) {
	switch key {
	case "profile.name":
		return s.Profile.Name, nil
	case "profile.email":
		return s.Profile.Email, nil
	case "profile.bio":
		return s.Profile.Bio, nil
	case "preferences.theme":
		return s.Preferences.Theme, nil
	case "preferences.language":
		return s.Preferences.Language, nil
	case "preferences.timezone":
		return s.Preferences.Timezone, nil
	case "preferences.date_format":
		return s.Preferences.DateFormat, nil
	case "preferences.time_format":
		return s.Preferences.TimeFormat, nil
	case "preferences.default_priority":
		return s.Preferences.DefaultPriority, nil
	case "preferences.week_start":
		return s.Preferences.WeekStart, nil
	case "preferences.compact_view":
		return strconv.FormatBool(s.Preferences.CompactView), nil
	case "notifications.deadlines":
		return strconv.FormatBool(s.Notifications.Deadlines), nil
	case "notifications.overdue":
		return strconv.FormatBool(s.Notifications.Overdue), nil
	case "notifications.completions":
		return strconv.FormatBool(s.Notifications.Completions), nil
	case "notifications.recommendations":
		return strconv.FormatBool(s.Notifications.Recommendations), nil
	case "notifications.frequency":
		return s.Notifications.Frequency, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSetting, key)
}

// Set assigns one setting from its text form and validates the result.
// s is left unchanged when an error is returned.
func (s *Settings) Set(key, value string) error {
	next := *s
	value = strings.TrimSpace(value)

	var boolTarget *bool
	switch key {
	case "profile.name":
		next.Profile.Name = value
	case "profile.email":
		next.Profile.Email = value
	case "profile.bio":
		next.Profile.Bio = value
	case "preferences.theme":
		next.Preferences.Theme = strings.ToLower(value)
	case "preferences.language":
		next.Preferences.Language = strings.ToLower(value)
	case "preferences.timezone":
		next.Preferences.Timezone = value
	case "preferences.date_format":
		next.Preferences.DateFormat = value
	case "preferences.time_format":
		next.Preferences.TimeFormat = strings.ToLower(value)
	case "preferences.default_priority":
		next.Preferences.DefaultPriority = strings.ToLower(value)
	case "preferences.week_start":
		next.Preferences.WeekStart = strings.ToLower(value)
	case "preferences.compact_view":
		boolTarget = &next.Preferences.CompactView
	case "notifications.deadlines":
		boolTarget = &next.Notifications.Deadlines
	case "notifications.overdue":
		boolTarget = &next.Notifications.Overdue
	case "notifications.completions":
		boolTarget = &next.Notifications.Completions
	case "notifications.recommendations":
		boolTarget = &next.Notifications.Recommendations
	case "notifications.frequency":
		next.Notifications.Frequency = strings.ToLower(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}

	if boolTarget != nil {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w for %s: %q", ErrInvalidBoolSetting, key, value)
		}
		*boolTarget = b
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

// Location returns the configured time zone, UTC if it cannot be loaded.
func (s Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Preferences.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Priority returns the default priority for new tasks.
func (s Settings) Priority() value_objects.Priority {
	p, err := value_objects.ParsePriority(s.Preferences.DefaultPriority)
	if err != nil {
		return value_objects.PriorityMedium
	}
	return p
}

// FirstWeekday returns the configured first day of the week.
func (s Settings) FirstWeekday() time.Weekday {
	if s.Preferences.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

// Categories maps the notification toggles to generator categories.
func (s Settings) Categories() notification.Categories {
	return notification.Categories{
		Deadlines:       s.Notifications.Deadlines,
		Overdue:         s.Notifications.Overdue,
		Completions:     s.Notifications.Completions,
		Recommendations: s.Notifications.Recommendations,
	}
}

// FormatDate renders d in the configured date format.
func (s Settings) FormatDate(d value_objects.Date) string {
	switch s.Preferences.DateFormat {
	case "dd/MM/yyyy":
		return d.Format("02/01/2006")
	case "yyyy-MM-dd":
		return d.String()
	default:
		return d.Format("01/02/2006")
	}
}

// FormatTime renders the clock time of t in the configured format.
func (s Settings) FormatTime(t time.Time) string {
	if s.Preferences.TimeFormat == "24h" {
		return t.Format("15:04")
	}
	return t.Format("3:04 PM")
}
