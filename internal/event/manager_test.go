package event

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/errandly/errand-service/internal/repository"
)

type recordingSink struct {
	mu       sync.Mutex
	topics   []string
	keys     []string
	payloads [][]byte
}

func (s *recordingSink) SendMessage(_ context.Context, topic string, key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = append(s.topics, topic)
	s.keys = append(s.keys, string(key))
	s.payloads = append(s.payloads, value)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

func testEvent(errandID string, status repository.ErrandStatus) repository.LifecycleEvent {
	return repository.LifecycleEvent{
		ErrandID:  errandID,
		Status:    status,
		ActorID:   "user-1",
		Timestamp: time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestManager_DeliversEverythingOnShutdown(t *testing.T) {
	sink := &recordingSink{}
	m := NewManager(sink, "errand_notifications", 2, 10, 50*time.Millisecond)

	ctx := context.Background()
	m.Start(ctx)

	m.Emit(ctx, testEvent("errand-1", repository.StatusPending))
	m.Emit(ctx, testEvent("errand-2", repository.StatusAccepted))
	m.Emit(ctx, testEvent("errand-3", repository.StatusCompleted))

	// give the aggregator a chance to pick the events up before shutdown
	time.Sleep(10 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	m.Shutdown(shutdownCtx)

	require.Equal(t, 3, sink.count())
	assert.Equal(t, "errand_notifications", sink.topics[0])
}

func TestManager_FlushesOnBatchSize(t *testing.T) {
	sink := &recordingSink{}
	m := NewManager(sink, "errand_notifications", 1, 2, time.Hour)

	ctx := context.Background()
	m.Start(ctx)

	m.Emit(ctx, testEvent("errand-1", repository.StatusPending))
	m.Emit(ctx, testEvent("errand-2", repository.StatusPending))

	// the timeout is an hour, so only the size trigger can flush this
	assert.Eventually(t, func() bool { return sink.count() == 2 }, 2*time.Second, 5*time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	m.Shutdown(shutdownCtx)
}

func TestManager_FlushesOnTimeout(t *testing.T) {
	sink := &recordingSink{}
	m := NewManager(sink, "errand_notifications", 1, 100, 20*time.Millisecond)

	ctx := context.Background()
	m.Start(ctx)

	m.Emit(ctx, testEvent("errand-1", repository.StatusPending))

	assert.Eventually(t, func() bool { return sink.count() == 1 }, 2*time.Second, 5*time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	m.Shutdown(shutdownCtx)
}

func TestManager_PayloadIsTheLifecycleEvent(t *testing.T) {
	sink := &recordingSink{}
	m := NewManager(sink, "errand_notifications", 1, 1, 10*time.Millisecond)

	ctx := context.Background()
	m.Start(ctx)

	sent := testEvent("errand-1", repository.StatusCancelled)
	m.Emit(ctx, sent)

	assert.Eventually(t, func() bool { return sink.count() == 1 }, 2*time.Second, 5*time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	m.Shutdown(shutdownCtx)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(t, "errand-1", sink.keys[0])

	var got repository.LifecycleEvent
	require.NoError(t, json.Unmarshal(sink.payloads[0], &got))
	assert.Equal(t, sent, got)
}

func TestManager_EmitNeverBlocks(t *testing.T) {
	sink := &recordingSink{}
	m := NewManager(sink, "errand_notifications", 1, 1, time.Hour)
	// never started: nothing drains the input channel

	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			m.Emit(ctx, testEvent("errand-1", repository.StatusPending))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Emit blocked on a saturated pipeline")
	}
}
