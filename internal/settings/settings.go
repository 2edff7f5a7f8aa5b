// Package settings holds user preferences.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

var (
	// ErrUnknownKey is returned when a preference name is not recognised.
	ErrUnknownKey = errors.New("unknown setting")
	// ErrInvalidValue is returned when a value fails validation for its key.
	ErrInvalidValue = errors.New("invalid setting value")
)

// FontSize is the display size preference.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// Setting keys as stored and accepted on the command line.
const (
	KeyDarkMode      = "dark_mode"
	KeyNotifications = "notifications"
	KeyLanguage      = "language"
	KeyFontSize      = "font_size"
)

// Keys lists the setting keys in display order.
var Keys = []string{KeyDarkMode, KeyNotifications, KeyLanguage, KeyFontSize}

// Languages are the supported interface languages, English and Twi.
var Languages = []language.Tag{language.English, language.MustParse("tw")}

var languageCodes = []string{"en", "tw"}

// Settings is the full preference set.
type Settings struct {
	DarkMode      bool     `json:"darkMode"`
	Notifications bool     `json:"notifications"`
	Language      string   `json:"language"`
	FontSize      FontSize `json:"fontSize"`
}

// Defaults returns the preferences of a fresh install.
func Defaults() Settings {
	return Settings{
		DarkMode:      false,
		Notifications: true,
		Language:      "en",
		FontSize:      FontMedium,
	}
}

// Repo persists settings.
type Repo interface {
	// Load returns the saved settings, or Defaults when nothing is saved.
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

// Get returns the string form of one setting.
func (s Settings) Get(key string) (string, error) {
	switch key {
	case KeyDarkMode:
		return strconv.FormatBool(s.DarkMode), nil
	case KeyNotifications:
		return strconv.FormatBool(s.Notifications), nil
	case KeyLanguage:
		return s.Language, nil
	case KeyFontSize:
		return string(s.FontSize), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKey, key)
}

// Set parses value for key and returns the updated settings. s is not
// modified.
func (s Settings) Set(key, value string) (Settings, error) {
	value = strings.TrimSpace(value)
	switch key {
	case KeyDarkMode, KeyNotifications:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return s, fmt.Errorf("%w: %s must be true or false, got %q", ErrInvalidValue, key, value)
		}
		if key == KeyDarkMode {
			s.DarkMode = b
		} else {
			s.Notifications = b
		}
	case KeyLanguage:
		lang, err := parseLanguage(value)
		if err != nil {
			return s, err
		}
		s.Language = lang
	case KeyFontSize:
		fs := FontSize(strings.ToLower(value))
		if !validFontSize(fs) {
			return s, fmt.Errorf("%w: font_size must be small, medium or large, got %q", ErrInvalidValue, value)
		}
		s.FontSize = fs
	default:
		return s, fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	return s, nil
}

// Validate reports the first invalid field.
func (s Settings) Validate() error {
	if _, err := parseLanguage(s.Language); err != nil {
		return err
	}
	if !validFontSize(s.FontSize) {
		return fmt.Errorf("%w: font_size %q", ErrInvalidValue, s.FontSize)
	}
	return nil
}

// Pairs returns key/value pairs in Keys order.
func (s Settings) Pairs() [][2]string {
	out := make([][2]string, 0, len(Keys))
	for _, k := range Keys {
		v, _ := s.Get(k)
		out = append(out, [2]string{k, v})
	}
	return out
}

// LanguageName returns the display name of the configured language.
func (s Settings) LanguageName() string {
	switch s.Language {
	case "tw":
		return "Twi"
	default:
		return "English"
	}
}

// Next cycles through the font sizes.
func (f FontSize) Next() FontSize {
	switch f {
	case FontSmall:
		return FontMedium
	case FontMedium:
		return FontLarge
	default:
		return FontSmall
	}
}

func validFontSize(f FontSize) bool {
	return f == FontSmall || f == FontMedium || f == FontLarge
}

// parseLanguage accepts any BCP 47 tag whose base language is supported
// and returns the short code.
func parseLanguage(value string) (string, error) {
	tag, err := language.Parse(value)
	if err != nil {
		return "", fmt.Errorf("%w: language %q: %v", ErrInvalidValue, value, err)
	}
	base, _ := tag.Base()
	for i, sup := range Languages {
		if b, _ := sup.Base(); b == base {
			return languageCodes[i], nil
		}
	}
	return "", fmt.Errorf("%w: language %q is not supported (en, tw)", ErrInvalidValue, value)
}
