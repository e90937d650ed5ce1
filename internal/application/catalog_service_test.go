package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/opbots/internal/domain"
	"github.com/bnema/opbots/internal/ports"
	"github.com/bnema/opbots/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCatalogService(repo ports.CatalogRepository, notifier ports.Notifier) *CatalogService {
	svc := NewCatalogService(repo, notifier, &instantClock{}, nil, "https://example.com/banner.jpg")
	svc.newID = func() domain.CatalogFileID { return "f1" }
	return svc
}

func TestCatalogServiceStartRegistersOnceAndDropsPendingUpload(t *testing.T) {
	repo := &inMemoryCatalogRepo{}
	svc := newTestCatalogService(repo, newRecordingNotifier())
	ctx := context.Background()

	require.NoError(t, svc.BeginUpload(UploadCommand{ChatID: 7, FileID: "tg-1", FileName: "notes.txt"}))
	require.True(t, svc.HasPendingUpload(7))

	require.NoError(t, svc.Start(ctx, 7))
	require.NoError(t, svc.Start(ctx, 7))

	assert.False(t, svc.HasPendingUpload(7))
	users, err := repo.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, users)
}

func TestCatalogServiceBeginUploadAcceptsTextOnly(t *testing.T) {
	tests := []struct {
		name    string
		cmd     UploadCommand
		wantErr error
	}{
		{name: "txt extension", cmd: UploadCommand{ChatID: 1, FileID: "a", FileName: "list.TXT"}},
		{name: "text mime", cmd: UploadCommand{ChatID: 1, FileID: "b", FileName: "list", MimeType: "text/plain"}},
		{name: "pdf", cmd: UploadCommand{ChatID: 1, FileID: "c", FileName: "doc.pdf", MimeType: "application/pdf"}, wantErr: domain.ErrUnsupportedDoc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestCatalogService(&inMemoryCatalogRepo{}, newRecordingNotifier())

			err := svc.BeginUpload(tt.cmd)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.False(t, svc.HasPendingUpload(tt.cmd.ChatID))
				return
			}
			require.NoError(t, err)
			assert.True(t, svc.HasPendingUpload(tt.cmd.ChatID))
		})
	}
}

func TestCatalogServiceCompleteUploadSavesEntry(t *testing.T) {
	repo := &inMemoryCatalogRepo{}
	svc := newTestCatalogService(repo, newRecordingNotifier())
	ctx := context.Background()

	require.NoError(t, svc.BeginUpload(UploadCommand{ChatID: 7, FileID: "tg-1", FileName: "notes.txt"}))

	file, err := svc.CompleteUpload(ctx, NameCommand{ChatID: 7, Name: "Combo list", Uploader: "alice"})
	require.NoError(t, err)

	assert.Equal(t, domain.CatalogFile{
		ID:         "f1",
		Name:       "Combo list",
		TelegramID: "tg-1",
		Uploader:   "alice",
		CreatedAt:  (&instantClock{}).Now(),
	}, file)
	assert.False(t, svc.HasPendingUpload(7))

	resolved, err := svc.Resolve(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, file, resolved)
}

func TestCatalogServiceCompleteUploadRejections(t *testing.T) {
	svc := newTestCatalogService(&inMemoryCatalogRepo{}, newRecordingNotifier())
	ctx := context.Background()

	_, err := svc.CompleteUpload(ctx, NameCommand{ChatID: 7, Name: "orphan"})
	require.ErrorIs(t, err, domain.ErrNoPendingFile)

	require.NoError(t, svc.BeginUpload(UploadCommand{ChatID: 7, FileID: "tg-1", FileName: "a.txt"}))
	_, err = svc.CompleteUpload(ctx, NameCommand{ChatID: 7, Name: "  "})
	require.ErrorIs(t, err, domain.ErrEmptyInput)
	assert.True(t, svc.HasPendingUpload(7))
}

func TestCatalogServiceCompleteUploadKeepsPendingOnSaveFailure(t *testing.T) {
	repo := &inMemoryCatalogRepo{err: errors.New("disk full")}
	svc := newTestCatalogService(repo, newRecordingNotifier())

	require.NoError(t, svc.BeginUpload(UploadCommand{ChatID: 7, FileID: "tg-1", FileName: "a.txt"}))
	_, err := svc.CompleteUpload(context.Background(), NameCommand{ChatID: 7, Name: "x"})

	require.ErrorContains(t, err, "save file")
	assert.True(t, svc.HasPendingUpload(7))
}

func TestCatalogServiceCancelUpload(t *testing.T) {
	svc := newTestCatalogService(&inMemoryCatalogRepo{}, newRecordingNotifier())

	assert.False(t, svc.CancelUpload(7))
	require.NoError(t, svc.BeginUpload(UploadCommand{ChatID: 7, FileID: "tg-1", FileName: "a.txt"}))
	assert.True(t, svc.CancelUpload(7))
	assert.False(t, svc.HasPendingUpload(7))
}

func TestCatalogServiceResolveMissing(t *testing.T) {
	svc := newTestCatalogService(&inMemoryCatalogRepo{}, newRecordingNotifier())

	_, err := svc.Resolve(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestCatalogServiceDashboardCounts(t *testing.T) {
	repo := &inMemoryCatalogRepo{
		files: []domain.CatalogFile{{ID: "a"}, {ID: "b"}},
		users: []int64{1, 2, 3},
	}
	svc := newTestCatalogService(repo, newRecordingNotifier())

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.CatalogStats{Files: 2, Users: 3}, dash.Stats)
	assert.Equal(t, "https://example.com/banner.jpg", dash.BannerURL)
}

func TestCatalogServiceBroadcastSwallowsRecipientFailures(t *testing.T) {
	repo := mocks.NewMockCatalogRepository(t)
	repo.EXPECT().Users(mock.Anything).Return([]int64{1, 2, 3}, nil).Once()

	notifier := mocks.NewMockNotifier(t)
	notifier.EXPECT().
		Send(mock.Anything, mock.MatchedBy(func(msg ports.Message) bool { return msg.ChatID == 2 })).
		Return(ports.MessageRef{}, errors.New("blocked by user")).Once()
	notifier.EXPECT().
		Send(mock.Anything, mock.MatchedBy(func(msg ports.Message) bool {
			return msg.ChatID != 2 && msg.Text == "ANNOUNCEMENT\n\nnew files"
		})).
		Return(ports.MessageRef{MessageID: 1}, nil).Twice()

	svc := NewCatalogService(repo, notifier, nil, nil, "")

	result, err := svc.Broadcast(context.Background(), "new files")
	require.NoError(t, err)
	assert.Equal(t, BroadcastResult{Recipients: 3, Delivered: 2}, result)
}

func TestCatalogServiceNewIDIsCompactUUID(t *testing.T) {
	id := newCatalogFileID()

	assert.Len(t, string(id), 32)
	assert.NotContains(t, string(id), "-")
}
