package models

import (
	"strings"

	"github.com/google/uuid"
)

// Account represents a demo bank account. Balance is never stored; it is
// recomputed from Movements on every read.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Owner        string    `json:"owner"`
	Username     string    `json:"username"`
	PIN          int       `json:"-"` // Not serialized
	InterestRate float64   `json:"interest_rate"`
	Movements    []float64 `json:"movements"`
}

// DeriveUsername builds the login name from the owner's full display name:
// the lowercase first letter of each space-separated word.
// "Jonas Schmedtmann" becomes "js".
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, word := range strings.Fields(strings.ToLower(owner)) {
		b.WriteRune([]rune(word)[0])
	}
	return b.String()
}
