package uid

import "github.com/google/uuid"

// GenerateGameID returns a random identifier for a game session.
func GenerateGameID() string {
	return uuid.NewString()
}

// GenerateReportID returns a time-ordered identifier for a simulation report, so
// reports sort by creation when listed by ID.
func GenerateReportID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// IsValid reports whether s parses as a UUID.
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
