package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/opbots/internal/domain"
	"github.com/bnema/opbots/internal/ports"
)

// TokenService stores bot tokens in the secret backend under per-bot refs.
type TokenService struct {
	store ports.SecretStore
	refs  map[domain.Bot]string
}

func NewTokenService(store ports.SecretStore, refs map[domain.Bot]string) *TokenService {
	return &TokenService{store: store, refs: refs}
}

func (s *TokenService) Set(ctx context.Context, bot domain.Bot, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrEmptyInput
	}

	ref, err := s.ref(bot)
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, ref, token); err != nil {
		return fmt.Errorf("store %s token: %w", bot, err)
	}
	return nil
}

func (s *TokenService) Remove(ctx context.Context, bot domain.Bot) error {
	ref, err := s.ref(bot)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, ref); err != nil {
		return fmt.Errorf("delete %s token: %w", bot, err)
	}
	return nil
}

// Resolve returns the token for bot. An inline token from configuration wins
// over the secret backend.
func (s *TokenService) Resolve(ctx context.Context, bot domain.Bot, inline string) (string, error) {
	if inline = strings.TrimSpace(inline); inline != "" {
		return inline, nil
	}

	ref, err := s.ref(bot)
	if err != nil {
		return "", err
	}

	token, err := s.store.Get(ctx, ref)
	if err != nil {
		if errors.Is(err, ports.ErrSecretNotFound) {
			return "", fmt.Errorf("%w: %s (run `opbots token set --bot %s`)", domain.ErrTokenMissing, bot, bot)
		}
		return "", fmt.Errorf("resolve %s token: %w", bot, err)
	}
	if strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrTokenMissing, bot)
	}

	return strings.TrimSpace(token), nil
}

func (s *TokenService) ref(bot domain.Bot) (string, error) {
	ref, ok := s.refs[bot]
	if !ok || strings.TrimSpace(ref) == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownBot, bot)
	}
	return ref, nil
}
