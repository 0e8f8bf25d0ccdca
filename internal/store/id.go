package store

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"
)

// NewID combines a millisecond timestamp with a short random suffix.
// Collisions are practically negligible for a single-user store, and
// Create re-rolls against the loaded collection anyway, so uniqueness
// holds even when the clock stalls.
func NewID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + fmt.Sprintf("%03d", rand.IntN(1000))
}
