package utils

import (
	"fmt"

	pkgerrors "OnShift/pkg/errors"
)

// ParseWorkerID parses the decimal public worker ID carried in JWT
// claims and URL params.
func ParseWorkerID(id string) (int64, error) {
	var workerID int64
	if _, err := fmt.Sscanf(id, "%d", &workerID); err != nil {
		return 0, pkgerrors.InvalidWorkerID
	}
	if workerID <= 0 {
		return 0, pkgerrors.InvalidWorkerID
	}
	return workerID, nil
}

// FormatWorkerID renders a public worker ID for API payloads.
func FormatWorkerID(workerID int64) string {
	return fmt.Sprintf("%d", workerID)
}
