package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kernel/kernel-go-sdk"
)

// CleanedUpSdkError trims Kernel API errors down to the status and message instead
// of the full request dump the SDK renders.
type CleanedUpSdkError struct {
	Err error
}

func (e CleanedUpSdkError) Error() string {
	var apiErr *kernel.Error
	if errors.As(e.Err, &apiErr) {
		msg := strings.TrimSpace(apiErr.RawJSON())
		if msg == "" {
			return fmt.Sprintf("kernel API error: status %d", apiErr.StatusCode)
		}
		return fmt.Sprintf("kernel API error: status %d: %s", apiErr.StatusCode, msg)
	}
	return e.Err.Error()
}

func (e CleanedUpSdkError) Unwrap() error { return e.Err }
