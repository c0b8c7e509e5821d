package orchestrators

import (
	"errors"
	"strconv"
	"strings"

	"fitclub/internal/adapters/gymapi"
)

// Validation failures. Their text is shown to the user as is.
var (
	ErrLoginFieldsMissing   = errors.New("Please fill in all fields.")
	ErrInvalidClassID       = errors.New("Please enter a valid class ID.")
	ErrAvailabilityMissing  = errors.New("Please fill in both start and end time.")
	ErrRoomFieldsMissing    = errors.New("Please fill in room name and capacity.")
	ErrClassFieldsMissing   = errors.New("Please fill in all fields.")
	ErrSignupFieldsMissing  = errors.New("Please fill in all required fields.")
	ErrSessionNotPersisted  = errors.New("session could not be stored")
	ErrUnexpectedLoginReply = errors.New("unexpected response from server")
)

var validationErrors = []error{
	ErrLoginFieldsMissing,
	ErrInvalidClassID,
	ErrAvailabilityMissing,
	ErrRoomFieldsMissing,
	ErrClassFieldsMissing,
	ErrSignupFieldsMissing,
}

// IsValidation reports whether err is a form validation failure.
func IsValidation(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// ResultMessage renders a form failure for the page's result element.
// Validation failures show their own text; backend failures are prefixed with "Error: ".
func ResultMessage(err error) string {
	if IsValidation(err) {
		return err.Error()
	}
	return "Error: " + gymapi.Message(err)
}

// formInt reads a form value as an integer the way a browser's parseInt does:
// leading whitespace and trailing garbage are ignored, and anything without
// leading digits reads as 0.
func formInt(raw string) int {
	s := strings.TrimLeft(raw, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
