// Package settings wraps a theme's persisted settings snapshot.
package settings

import (
	_ "embed"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// FormatMode selects how a setting value is prepared for output.
type FormatMode int

const (
	// FormatRaw returns the stored value untouched.
	FormatRaw FormatMode = iota
	// FormatText treats the value as plain text: markup is stripped, newlines become <br>.
	FormatText
	// FormatHTML keeps trusted markup after sanitising it.
	FormatHTML
	// FormatString strips all markup and trims the value.
	FormatString
)

var (
	htmlPolicy   = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// Settings is an immutable snapshot of one theme's settings.
type Settings struct {
	values map[string]string
}

// New builds a snapshot from stored values layered over the embedded defaults.
func New(stored map[string]string) (Settings, error) {
	defaults, err := Defaults()
	if err != nil {
		return Settings{}, err
	}
	merged := make(map[string]string, len(defaults)+len(stored))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range stored {
		merged[k] = v
	}
	return Settings{values: merged}, nil
}

// FromMap builds a snapshot without defaults.
func FromMap(values map[string]string) Settings {
	cp := make(map[string]string, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return Settings{values: cp}
}

// Defaults returns the embedded default values.
func Defaults() (map[string]string, error) {
	out := map[string]string{}
	if err := yaml.Unmarshal(defaultsYAML, &out); err != nil {
		return nil, fmt.Errorf("parse default settings: %w", err)
	}
	return out, nil
}

// Values returns a copy of every value in the snapshot.
func (s Settings) Values() map[string]string {
	cp := make(map[string]string, len(s.values))
	for k, v := range s.values {
		cp[k] = v
	}
	return cp
}

// Get returns the raw value, or "" when unset.
func (s Settings) Get(name string) string {
	return s.values[name]
}

// Has reports whether the setting holds a non-empty value.
func (s Settings) Has(name string) bool {
	return !s.Empty(name)
}

// Empty follows the loose emptiness rule of the stored settings: "", "0" and "false" are empty.
func (s Settings) Empty(name string) bool {
	switch strings.TrimSpace(s.values[name]) {
	case "", "0", "false":
		return true
	}
	return false
}

// Bool interprets the setting as a flag.
func (s Settings) Bool(name string) bool {
	return !s.Empty(name)
}

// Int parses the setting as an integer.
func (s Settings) Int(name string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s.values[name]))
	if err != nil {
		return def
	}
	return v
}

// CSV splits a comma separated setting. An empty setting yields an empty slice.
func (s Settings) CSV(name string) []string {
	raw := s.values[name]
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}

// Format returns the setting prepared for output and whether it was set.
func (s Settings) Format(name string, mode FormatMode) (string, bool) {
	if s.Empty(name) {
		return "", false
	}
	return FormatValue(s.values[name], mode), true
}

// FormatValue applies mode to an arbitrary value.
func FormatValue(v string, mode FormatMode) string {
	switch mode {
	case FormatText:
		// StrictPolicy already escapes the text it keeps.
		escaped := strings.ReplaceAll(strictPolicy.Sanitize(v), "\r\n", "\n")
		return strings.ReplaceAll(escaped, "\n", "<br />")
	case FormatHTML:
		return htmlPolicy.Sanitize(v)
	case FormatString:
		return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(v)))
	default:
		return v
	}
}
