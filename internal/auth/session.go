package auth

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Session is derived per request, never persisted.
type Session struct {
	UID      string `json:"uid"`
	Name     string `json:"name"`
	Greeting string `json:"greeting"`
}

// NewSession derives the display session for a verified user.
func NewSession(u *User, now time.Time) Session {
	name := DisplayName(u.Name, u.Email)
	return Session{UID: u.UID, Name: name, Greeting: Greeting(name, now)}
}

// DisplayName falls back from the profile name to the email's local part,
// then to the literal "Friend".
func DisplayName(profileName, email string) string {
	if profileName != "" {
		return profileName
	}
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return "Friend"
}

// Greeting builds the time-of-day greeting for the first name token.
func Greeting(name string, now time.Time) string {
	period := "evening"
	switch h := now.Hour(); {
	case h < 12:
		period = "morning"
	case h < 18:
		period = "afternoon"
	}
	first := name
	if i := strings.IndexByte(name, ' '); i > 0 {
		first = name[:i]
	}
	return fmt.Sprintf("Good %s, %s. Let's make today count ✨", period, first)
}

var (
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasSpecial = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// ValidatePassword applies the signup password rules before any call to
// the provider. An empty return means the password is acceptable.
func ValidatePassword(pw string) string {
	if len(pw) < 6 {
		return "Password must be at least 6 characters long."
	}
	if !hasUpper.MatchString(pw) || !hasLower.MatchString(pw) || !hasSpecial.MatchString(pw) {
		return "Password must include uppercase, lowercase, and a special character."
	}
	return ""
}
