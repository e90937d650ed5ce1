package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bnema/opbots/internal/domain"
	"github.com/bnema/opbots/internal/ports"
	"github.com/google/uuid"
)

type CatalogService struct {
	repo     ports.CatalogRepository
	notifier ports.Notifier
	clock    ports.Clock
	logger   *slog.Logger
	banner   string
	newID    func() domain.CatalogFileID

	mu      sync.Mutex
	pending map[int64]UploadCommand
}

func NewCatalogService(repo ports.CatalogRepository, notifier ports.Notifier, clock ports.Clock, logger *slog.Logger, bannerURL string) *CatalogService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &CatalogService{
		repo:     repo,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
		banner:   bannerURL,
		newID:    newCatalogFileID,
		pending:  map[int64]UploadCommand{},
	}
}

// Start registers the chat and drops any upload it left unnamed.
func (s *CatalogService) Start(ctx context.Context, chatID int64) error {
	s.CancelUpload(chatID)

	added, err := s.repo.AddUser(ctx, chatID)
	if err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	if added {
		s.logger.Info("user registered", "chat_id", chatID)
	}

	return nil
}

func (s *CatalogService) Resolve(ctx context.Context, id domain.CatalogFileID) (domain.CatalogFile, error) {
	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.CatalogFile{}, fmt.Errorf("get file by id: %w", err)
	}
	return file, nil
}

func (s *CatalogService) Dashboard(ctx context.Context) (Dashboard, error) {
	files, err := s.repo.List(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list files: %w", err)
	}
	users, err := s.repo.Users(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list users: %w", err)
	}

	return Dashboard{
		Stats:     domain.CatalogStats{Files: len(files), Users: len(users)},
		BannerURL: s.banner,
	}, nil
}

func (s *CatalogService) Gallery(ctx context.Context) ([]domain.CatalogFile, error) {
	files, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}

// BeginUpload parks an accepted document until the chat replies with a name.
func (s *CatalogService) BeginUpload(cmd UploadCommand) error {
	if !domain.AcceptsDocument(cmd.FileName, cmd.MimeType) {
		return domain.ErrUnsupportedDoc
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[cmd.ChatID] = cmd
	return nil
}

// CancelUpload reports whether a pending upload was dropped.
func (s *CatalogService) CancelUpload(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.pending[chatID]
	delete(s.pending, chatID)
	return ok
}

func (s *CatalogService) HasPendingUpload(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.pending[chatID]
	return ok
}

// CompleteUpload stores the pending document of cmd.ChatID under cmd.Name.
func (s *CatalogService) CompleteUpload(ctx context.Context, cmd NameCommand) (domain.CatalogFile, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return domain.CatalogFile{}, domain.ErrEmptyInput
	}

	s.mu.Lock()
	upload, ok := s.pending[cmd.ChatID]
	s.mu.Unlock()
	if !ok {
		return domain.CatalogFile{}, domain.ErrNoPendingFile
	}

	file := domain.CatalogFile{
		ID:         s.newID(),
		Name:       cmd.Name,
		TelegramID: upload.FileID,
		Uploader:   cmd.Uploader,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.repo.Save(ctx, file); err != nil {
		return domain.CatalogFile{}, fmt.Errorf("save file: %w", err)
	}

	s.mu.Lock()
	if current, ok := s.pending[cmd.ChatID]; ok && current.FileID == upload.FileID {
		delete(s.pending, cmd.ChatID)
	}
	s.mu.Unlock()

	s.logger.Info("file saved", "id", file.ID, "name", file.Name, "uploader", file.Uploader)
	return file, nil
}

// Broadcast sends text to every registered user. Individual delivery
// failures are logged and skipped.
func (s *CatalogService) Broadcast(ctx context.Context, text string) (BroadcastResult, error) {
	users, err := s.repo.Users(ctx)
	if err != nil {
		return BroadcastResult{}, fmt.Errorf("list users: %w", err)
	}

	result := BroadcastResult{Recipients: len(users)}
	for _, chatID := range users {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := s.notifier.Send(ctx, ports.Message{ChatID: chatID, Text: "ANNOUNCEMENT\n\n" + text}); err != nil {
			s.logger.Debug("broadcast delivery failed", "chat_id", chatID, "error", err)
			continue
		}
		result.Delivered++
	}

	return result, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrFileNotFound)
}

func newCatalogFileID() domain.CatalogFileID {
	return domain.CatalogFileID(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
