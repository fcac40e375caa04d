package ports

import (
	"context"

	"github.com/renato0307/prmonitor/internal/domain"
)

// StateFetcher asks the external source for the current state of a pull request.
// Errors are *domain.FetchError classified by one of the domain sentinels.
type StateFetcher interface {
	FetchState(ctx context.Context, id domain.PRIdentity, credential string) (domain.RemoteState, error)
}
