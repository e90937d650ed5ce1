package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/bnema/opbots/internal/ports"
)

const (
	dirMode         = 0o700
	tokenFileMode   = 0o600
	tempFilePattern = ".token-*.tmp"
)

// ErrInvalidKey marks a ref that cannot name a file below the store root.
var ErrInvalidKey = errors.New("invalid secret key")

// refSegment is one slash-separated part of a ref such as "telegram/groups".
var refSegment = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Store keeps one bot token per file below root, laid out by ref:
// "telegram/groups" lives at <root>/telegram/groups. Tokens are single
// lines; a trailing newline left by an editor is dropped on read.
type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	segments, err := parseRef(key)
	if err != nil {
		return err
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("secret %q: value must be a single line", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeToken(s.pathFor(segments), value)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	segments, err := parseRef(key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.pathFor(segments))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("secret file %q: %w", key, ports.ErrSecretNotFound)
	case err != nil:
		return "", fmt.Errorf("read secret %q: %w", key, err)
	}

	return strings.TrimRight(string(data), "\r\n"), nil
}

// Delete removes the token and any directories it leaves empty, up to the
// store root. Deleting a missing token is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	segments, err := parseRef(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.pathFor(segments)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete secret %q: %w", key, err)
	}

	for i := len(segments) - 1; i > 0; i-- {
		// Fails on the first directory still holding another token.
		if err := os.Remove(s.pathFor(segments[:i])); err != nil {
			break
		}
	}
	return nil
}

func (s *Store) pathFor(segments []string) string {
	return filepath.Join(append([]string{s.root}, segments...)...)
}

// writeToken replaces path through a temp file so a concurrent reader never
// sees a truncated token.
func (s *Store) writeToken(path string, value string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("create secret directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp secret: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(tokenFileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp secret: %w", err)
	}
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp secret: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp secret: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace secret file: %w", err)
	}
	return nil
}

func parseRef(key string) ([]string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: key is empty", ErrInvalidKey)
	}

	segments := strings.Split(trimmed, "/")
	for _, segment := range segments {
		if !refSegment.MatchString(segment) {
			return nil, fmt.Errorf("%w %q", ErrInvalidKey, key)
		}
	}
	return segments, nil
}
