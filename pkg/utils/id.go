package utils

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var idCounter uint64

// GenerateID generates a process-unique ID from the clock and a counter
func GenerateID() string {
	count := atomic.AddUint64(&idCounter, 1)
	return fmt.Sprintf("%x-%x", time.Now().UnixNano(), count)
}

// GenerateRunID generates a run ID with a timestamp prefix and a random suffix
func GenerateRunID(now time.Time) string {
	timestamp := now.Format("20060102-150405")
	u, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("run-%s-%s", timestamp, GenerateID())
	}
	return fmt.Sprintf("run-%s-%s", timestamp, u.String()[:8])
}
