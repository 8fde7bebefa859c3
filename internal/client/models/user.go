package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// PlaceholderName is shown when the identity token carries no name.
const PlaceholderName = "Google user"

// User is the signed-in identity. Name and Email come from unverified token
// claims and are display-only; Token is forwarded to the backend.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Token string `json:"token"`
}

func (u User) DisplayEmail() string {
	if u.Email != "" {
		return u.Email
	}
	return PlaceholderName
}

// Initial is the avatar letter.
func (u User) Initial() string {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return "U"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}

// Session is a signed-in user plus the time of the last tracked activity.
type Session struct {
	User       User
	LastActive time.Time
}

// Expired reports whether the inactivity window has elapsed at now.
func (s Session) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActive) > timeout
}
