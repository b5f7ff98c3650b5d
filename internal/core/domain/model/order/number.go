package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewOrderNumber derives a human-readable order number assigned at creation,
// e.g. "HTD-20250601-7F3A". The date groups numbers for support staff; the
// random suffix keeps them non-guessable. Uniqueness is only cosmetic here,
// the order's real identity is its UUID.
func NewOrderNumber(now time.Time) string {
	id := uuid.New()
	return fmt.Sprintf("HTD-%s-%X", now.Format("20060102"), id[:2])
}
