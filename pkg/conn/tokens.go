package conn

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/db"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

// PersistentTokens wraps a TokenSource and writes every refreshed token
// through to the accounts store, so the next start does not need a full
// re-authentication.
type PersistentTokens struct {
	inner     speaker.TokenSource
	store     db.AccountStore
	accountID int64
}

// NewPersistentTokens builds a write-through TokenSource for the given
// account.
func NewPersistentTokens(inner speaker.TokenSource, store db.AccountStore, accountID int64) *PersistentTokens {
	return &PersistentTokens{inner: inner, store: store, accountID: accountID}
}

func (p *PersistentTokens) Token() speaker.Token {
	return p.inner.Token()
}

func (p *PersistentTokens) Refresh(ctx context.Context) (speaker.Token, error) {
	token, err := p.inner.Refresh(ctx)
	if err != nil {
		return token, err
	}

	if err := p.store.UpdateTokens(ctx, p.accountID, token.AccessToken, token.RefreshToken, token.ExpiresAt); err != nil {
		// The refreshed token is still usable, only the write-back failed.
		log.Warn().Err(err).Int64("account_id", p.accountID).Msg("Failed to persist refreshed tokens")
	}

	return token, nil
}
