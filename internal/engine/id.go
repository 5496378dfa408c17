package engine

import "github.com/google/uuid"

// generateID creates a random ID for a brew session.
func generateID() string {
	return uuid.NewString()
}
