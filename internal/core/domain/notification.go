package domain

import "time"

// Notification is an entry of the notification panel.
type Notification struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Type    string    `json:"type"` // info, success, warning
	Unread  bool      `json:"unread"`
	At      time.Time `json:"at"`
}

// Trend is a card of the trends panel.
type Trend struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Badge       string `json:"badge" yaml:"badge"`
	Score       int    `json:"score" yaml:"score"`
	Growth      string `json:"growth" yaml:"growth"`
	Audience    string `json:"audience" yaml:"audience"`
	Icon        string `json:"icon" yaml:"icon"`
}

// Theme is the persisted colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}
