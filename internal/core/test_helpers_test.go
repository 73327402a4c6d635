package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/planhub/chat-server/internal/store"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// expectSilence fails if any event arrives on ch within the window.
func expectSilence(t *testing.T, ch <-chan *Event) {
	t.Helper()

	deadline := time.Now().Add(150 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil {
				t.Fatalf("expected no event, got kind %v", ev.Kind)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// expectNone fails if an event of the given kind arrives on ch within the
// window; events of other kinds are ignored.
func expectNone(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(150 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("expected no %v event, got one", kind)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// fakeStore is an in-memory store.ReceiptStore with injectable failures.
type fakeStore struct {
	mu        sync.Mutex
	receipts  map[string]time.Time // "<messageID>/<userID>" -> readAt
	chats     map[string]string    // messageID -> chatID
	upsertErr error
	lookupErr error
}

func newFakeStore(chats map[string]string) *fakeStore {
	if chats == nil {
		chats = make(map[string]string)
	}
	return &fakeStore{
		receipts: make(map[string]time.Time),
		chats:    chats,
	}
}

func (f *fakeStore) UpsertReadReceipt(_ context.Context, messageID, userID string, readAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.receipts[messageID+"/"+userID] = readAt
	return nil
}

func (f *fakeStore) ChatForMessage(_ context.Context, messageID string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return "", false, f.lookupErr
	}
	chatID, ok := f.chats[messageID]
	return chatID, ok, nil
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) receiptAt(messageID, userID string) (time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ts, ok := f.receipts[messageID+"/"+userID]
	return ts, ok
}

// startHub runs a hub for the duration of the test and returns it together
// with a stop function that blocks until the run loop has exited.
func startHub(t *testing.T, st *fakeStore) (*Hub, func()) {
	t.Helper()

	var rs store.ReceiptStore
	if st != nil {
		rs = st
	}

	hub := NewHub(rs, nil, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	t.Cleanup(cancel)

	stop := func() {
		cancel()
		<-done
	}
	return hub, stop
}
