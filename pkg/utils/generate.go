package utils

import (
	"github.com/google/uuid"
)

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// GenerateSessionToken creates an opaque bearer token for a new session.
func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// GenerateConfirmationToken creates the token mailed out for email confirmation.
func GenerateConfirmationToken() uuid.UUID {
	return uuid.New()
}
