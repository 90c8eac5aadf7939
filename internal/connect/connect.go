// Package connect manages the link between the local install and the
// upstream aggregation API: storing the bearer token and tearing it down.
package connect

import (
	"context"
	"errors"
	"fmt"

	"github.com/dolla-nz/centsync/internal/centapi"
	"github.com/dolla-nz/centsync/internal/logger"
	"github.com/dolla-nz/centsync/internal/props"
)

// Revoke revokes the stored bearer token upstream and clears it locally.
// The local clear happens even when the upstream call fails, so a
// half-broken connection can always be discarded. It reports whether a
// token was stored at all; with no token it is a no-op.
func Revoke(ctx context.Context, api centapi.Service, store *props.Store) (bool, error) {
	log := logger.FromContext(ctx)

	token, err := store.UserToken()
	if err != nil {
		if errors.Is(err, props.ErrNotConnected) {
			return false, nil
		}
		return false, fmt.Errorf("Revoke: reading token: %w", err)
	}

	if err := api.RevokeToken(ctx, token); err != nil {
		log.Warn().Err(err).Msg("Upstream token revocation failed")
	}
	if err := store.ClearUserToken(); err != nil {
		return true, fmt.Errorf("Revoke: clearing token: %w", err)
	}

	log.Info().Msg("Connection revoked")
	return true, nil
}
