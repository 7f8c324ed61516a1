package utils

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidatePhone accepts E.164-ish numbers, which is what the SMS
// gateway expects.
func ValidatePhone(phone string) bool {
	matched, _ := regexp.MatchString(`^\+?[1-9]\d{6,14}$`, phone)
	return matched
}
