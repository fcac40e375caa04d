package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	gh "github.com/google/go-github/v45/github"

	"github.com/renato0307/prmonitor/internal/domain"
)

// classify maps a go-github error to a *domain.FetchError
func classify(err error, now time.Time) *domain.FetchError {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		fe := domain.NewFetchError(domain.ErrRateLimited, err)
		fe.RetryAfter = max(rateErr.Rate.Reset.Time.Sub(now), 0)
		return fe
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		fe := domain.NewFetchError(domain.ErrRateLimited, err)
		if abuseErr.RetryAfter != nil {
			fe.RetryAfter = *abuseErr.RetryAfter
		}
		return fe
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return classifyStatus(respErr.Response, err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.NewFetchError(domain.ErrTransient, err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return domain.NewFetchError(domain.ErrMalformed, err)
	}

	// network and transport failures
	return domain.NewFetchError(domain.ErrTransient, err)
}

func classifyStatus(resp *http.Response, err error) *domain.FetchError {
	switch code := resp.StatusCode; {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return domain.NewFetchError(domain.ErrUnauthorized, err)
	case code == http.StatusNotFound, code == http.StatusGone:
		return domain.NewFetchError(domain.ErrNotFound, err)
	case code == http.StatusTooManyRequests:
		fe := domain.NewFetchError(domain.ErrRateLimited, err)
		if seconds, convErr := strconv.Atoi(resp.Header.Get("Retry-After")); convErr == nil && seconds > 0 {
			fe.RetryAfter = time.Duration(seconds) * time.Second
		}
		return fe
	case code >= http.StatusInternalServerError:
		return domain.NewFetchError(domain.ErrTransient, err)
	default:
		return domain.NewFetchError(domain.ErrMalformed, err)
	}
}
