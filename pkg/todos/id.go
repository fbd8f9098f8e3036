package todos

import "github.com/google/uuid"

// NewID returns a UUID v7 string. The leading 48 bits are the Unix
// millisecond timestamp and the rest is random, so IDs sort by creation time.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
