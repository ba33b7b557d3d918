package auth

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDisplayName(t *testing.T) {
	is := is.New(t)

	is.Equal(DisplayName("Rahul Nanda", "rahul@example.com"), "Rahul Nanda")
	is.Equal(DisplayName("", "rahul@example.com"), "rahul")
	is.Equal(DisplayName("", ""), "Friend")
	is.Equal(DisplayName("", "@example.com"), "Friend") // empty local part
}

func TestGreeting(t *testing.T) {
	is := is.New(t)

	at := func(hour int) time.Time {
		return time.Date(2025, 6, 15, hour, 30, 0, 0, time.UTC)
	}

	is.Equal(Greeting("Rahul", at(8)), "Good morning, Rahul. Let's make today count ✨")
	is.Equal(Greeting("Rahul", at(11)), "Good morning, Rahul. Let's make today count ✨")
	is.Equal(Greeting("Rahul", at(12)), "Good afternoon, Rahul. Let's make today count ✨")
	is.Equal(Greeting("Rahul", at(17)), "Good afternoon, Rahul. Let's make today count ✨")
	is.Equal(Greeting("Rahul", at(18)), "Good evening, Rahul. Let's make today count ✨")
	is.Equal(Greeting("Rahul", at(23)), "Good evening, Rahul. Let's make today count ✨")

	// only the first name token is used
	is.Equal(Greeting("Rahul Nanda", at(8)), "Good morning, Rahul. Let's make today count ✨")
}

func TestValidatePassword(t *testing.T) {
	is := is.New(t)

	is.Equal(ValidatePassword("Abc!12"), "")
	is.Equal(ValidatePassword("Ab!1"), "Password must be at least 6 characters long.")
	is.Equal(ValidatePassword("abc!123"), "Password must include uppercase, lowercase, and a special character.")
	is.Equal(ValidatePassword("ABC!123"), "Password must include uppercase, lowercase, and a special character.")
	is.Equal(ValidatePassword("Abc1234"), "Password must include uppercase, lowercase, and a special character.")
}

func TestExtractIDToken(t *testing.T) {
	is := is.New(t)

	is.Equal(ExtractIDToken("Bearer abc123"), "abc123")
	is.Equal(ExtractIDToken("abc123"), "abc123")
	is.Equal(ExtractIDToken(""), "")
}
