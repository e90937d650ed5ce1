package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bnema/opbots/internal/domain"
	"github.com/bnema/opbots/internal/ports"
)

const operatorChat int64 = 42

// recordingNotifier keeps every sent message and the latest text written to
// each handle.
type recordingNotifier struct {
	mu          sync.Mutex
	nextID      int
	sent        []ports.Message
	latest      map[ports.MessageRef]string
	edits       int
	editButtons [][][]ports.Button
	sendErr     error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{latest: map[ports.MessageRef]string{}}
}

func (n *recordingNotifier) Send(_ context.Context, msg ports.Message) (ports.MessageRef, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.sendErr != nil {
		return ports.MessageRef{}, n.sendErr
	}

	n.nextID++
	ref := ports.MessageRef{ChatID: msg.ChatID, MessageID: n.nextID}
	n.sent = append(n.sent, msg)
	n.latest[ref] = msg.Text
	return ref, nil
}

func (n *recordingNotifier) Edit(_ context.Context, ref ports.MessageRef, text string, buttons [][]ports.Button) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.latest[ref]; !ok {
		return errors.New("unknown message")
	}
	n.latest[ref] = text
	n.edits++
	n.editButtons = append(n.editButtons, buttons)
	return nil
}

func (n *recordingNotifier) texts() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]string, 0, len(n.sent))
	for _, msg := range n.sent {
		out = append(out, msg.Text)
	}
	return out
}

func (n *recordingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.sent) == 0 {
		return ""
	}
	return n.sent[len(n.sent)-1].Text
}

func (n *recordingNotifier) latestText(ref ports.MessageRef) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.latest[ref]
}

// scriptedCreator records every unit and fails the ones listed in failOn.
// When gate is set each call blocks until the test releases it.
type scriptedCreator struct {
	mu        sync.Mutex
	connected bool
	failOn    map[int]error
	calls     []string
	got       [][]string
	started   chan string
	gate      chan struct{}
}

func newScriptedCreator() *scriptedCreator {
	return &scriptedCreator{connected: true, failOn: map[int]error{}}
}

func (c *scriptedCreator) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *scriptedCreator) CreateGroup(ctx context.Context, name string, participants []string) (ports.GroupInfo, error) {
	c.mu.Lock()
	c.calls = append(c.calls, name)
	c.got = append(c.got, append([]string(nil), participants...))
	index := len(c.calls)
	started, gate := c.started, c.gate
	err := c.failOn[index]
	c.mu.Unlock()

	if started != nil {
		started <- name
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ports.GroupInfo{}, ctx.Err()
		}
	}
	if err != nil {
		return ports.GroupInfo{}, err
	}

	return ports.GroupInfo{ID: name + "@g.us", Name: name}, nil
}

func (c *scriptedCreator) callNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

// instantClock fires every delay immediately and remembers what was asked.
type instantClock struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (c *instantClock) Now() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (c *instantClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.delays = append(c.delays, d)
	c.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- c.Now()
	return ch
}

func (c *instantClock) recorded() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.delays...)
}

// blockingClock never fires; only a stop, reset or shutdown ends a pause.
type blockingClock struct{}

func (blockingClock) Now() time.Time { return time.Time{} }

func (blockingClock) After(time.Duration) <-chan time.Time { return nil }

type inMemoryCatalogRepo struct {
	mu    sync.Mutex
	files []domain.CatalogFile
	users []int64
	err   error
}

func (r *inMemoryCatalogRepo) GetByID(_ context.Context, id domain.CatalogFileID) (domain.CatalogFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, file := range r.files {
		if file.ID == id {
			return file, nil
		}
	}
	return domain.CatalogFile{}, domain.ErrFileNotFound
}

func (r *inMemoryCatalogRepo) List(_ context.Context) ([]domain.CatalogFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	return append([]domain.CatalogFile(nil), r.files...), nil
}

func (r *inMemoryCatalogRepo) Save(_ context.Context, file domain.CatalogFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	r.files = append(r.files, file)
	return nil
}

func (r *inMemoryCatalogRepo) AddUser(_ context.Context, chatID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user == chatID {
			return false, nil
		}
	}
	r.users = append(r.users, chatID)
	return true, nil
}

func (r *inMemoryCatalogRepo) Users(_ context.Context) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.users...), nil
}

type memoryHistory struct {
	mu      sync.Mutex
	records []domain.RunRecord
}

func (h *memoryHistory) Append(_ context.Context, record domain.RunRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
	return nil
}

func (h *memoryHistory) Recent(_ context.Context, limit int) ([]domain.RunRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]domain.RunRecord, 0, len(h.records))
	for i := len(h.records) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, h.records[i])
	}
	return out, nil
}
