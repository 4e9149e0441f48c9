package drive

import (
	"context"
	"errors"
	"net"
	"net/http"

	"google.golang.org/api/googleapi"
)

// IsTransient classifies an object-store error as likely to succeed on retry:
// rate limiting, server-side errors, and network hiccups. Context
// cancellation and client errors are permanent.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests || gerr.Code >= 500
	}

	var nerr net.Error
	if errors.As(err, &nerr) {
		return true
	}

	return false
}
