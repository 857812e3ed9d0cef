package uid

import "github.com/google/uuid"

// NewRequestID returns a time-ordered UUID for correlating log lines.
func NewRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Normalize returns the canonical form of s when it is a UUID.
func Normalize(s string) (string, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
