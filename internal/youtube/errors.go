package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

var (
	ErrInvalidURL        = errors.New("invalid playlist url")
	ErrInvalidPlaylistID = errors.New("invalid playlist id")
	ErrPlaylistNotFound  = errors.New("playlist not found")
	ErrAccessDenied      = errors.New("playlist access denied")
	ErrQuotaExceeded     = errors.New("youtube api quota exceeded")
	ErrEmptyPlaylist     = errors.New("playlist has no available videos")
	ErrUpstream          = errors.New("youtube api request failed")
)

// quota and rate limit reasons reported in googleapi.ErrorItem.Reason
var quotaReasons = map[string]bool{
	"quotaExceeded":           true,
	"dailyLimitExceeded":      true,
	"dailyLimitExceededUnreg": true,
	"rateLimitExceeded":       true,
	"userRateLimitExceeded":   true,
}

var dailyQuotaReasons = map[string]bool{
	"quotaExceeded":           true,
	"dailyLimitExceeded":      true,
	"dailyLimitExceededUnreg": true,
}

func hasReason(apiErr *googleapi.Error, reasons map[string]bool) bool {
	for _, item := range apiErr.Errors {
		if reasons[item.Reason] {
			return true
		}
	}
	return false
}

// classify maps an API call error onto one of the package sentinels, keeping the original text
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests || hasReason(apiErr, quotaReasons):
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	case apiErr.Code == http.StatusForbidden:
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)
	case apiErr.Code == http.StatusNotFound:
		return fmt.Errorf("%w: %v", ErrPlaylistNotFound, err)
	default:
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
}

// retryable reports whether an API call error may succeed on another attempt
//
// Daily quota exhaustion, access and lookup failures are permanent; rate limiting,
// server errors and transport errors are retried.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return true
	}

	switch {
	case hasReason(apiErr, dailyQuotaReasons):
		return false
	case apiErr.Code == http.StatusTooManyRequests:
		return true
	case apiErr.Code >= http.StatusInternalServerError:
		return true
	default:
		return false
	}
}
