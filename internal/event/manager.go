package event

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/errandly/errand-service/internal/metrics"
	"github.com/errandly/errand-service/internal/repository"
)

// Sink receives marshalled event batches. The kafka producer satisfies it.
type Sink interface {
	SendMessage(ctx context.Context, topic string, key []byte, value []byte) error
}

// Manager is the best-effort real-time emitter. Lifecycle transitions hand it
// events after commit; an aggregator batches them and workers push batches to
// the sink. It never blocks the caller and never propagates failures: when
// the pipeline is saturated or shutting down, events are dropped and counted.
type Manager struct {
	workerCount int
	batchSize   int
	timeout     time.Duration
	topic       string
	sink        Sink

	inputChan  chan repository.LifecycleEvent
	batchChan  chan []repository.LifecycleEvent
	shutdownCh chan struct{}
	once       sync.Once

	wg sync.WaitGroup
}

func NewManager(sink Sink, topic string, workerCount, batchSize int, timeout time.Duration) *Manager {
	return &Manager{
		workerCount: workerCount,
		batchSize:   batchSize,
		timeout:     timeout,
		topic:       topic,
		sink:        sink,
		inputChan:   make(chan repository.LifecycleEvent, workerCount*batchSize*2),
		batchChan:   make(chan []repository.LifecycleEvent, workerCount*2),
		shutdownCh:  make(chan struct{}),
	}
}

func (m *Manager) Start(ctx context.Context) {
	log.Println("Starting event manager")
	m.wg.Add(1)
	go m.runAggregator(ctx)

	for i := 0; i < m.workerCount; i++ {
		m.wg.Add(1)
		go m.runWorker(ctx, i)
	}
}

func (m *Manager) Shutdown(ctx context.Context) {
	m.once.Do(func() {
		log.Println("Initiating event manager shutdown")
		close(m.shutdownCh)

		done := make(chan struct{})
		go func() {
			m.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			log.Println("Event manager shutdown completed")
		case <-ctx.Done():
			log.Println("WARNING: event manager shutdown interrupted")
		}
	})
}

// Emit queues one event. Fire-and-forget: a full queue drops the event rather
// than stalling the lifecycle caller.
func (m *Manager) Emit(ctx context.Context, event repository.LifecycleEvent) {
	select {
	case m.inputChan <- event:
	default:
		metrics.LifecycleEventsDroppedTotal.Inc()
	}
}

func (m *Manager) runAggregator(ctx context.Context) {
	defer m.wg.Done()

	var (
		batch    []repository.LifecycleEvent
		timer    *time.Timer
		timeoutC <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
		if len(batch) > 0 {
			m.dispatchBatch(batch)
		}
		close(m.batchChan)
	}()

	for {
		select {
		case event, ok := <-m.inputChan:
			if !ok {
				return
			}

			batch = append(batch, event)
			if len(batch) >= m.batchSize {
				m.dispatchBatch(batch)
				batch = nil
				timeoutC = nil
			} else if len(batch) == 1 {
				timer = time.NewTimer(m.timeout)
				timeoutC = timer.C
			}

		case <-timeoutC:
			m.dispatchBatch(batch)
			batch = nil
			timeoutC = nil

		case <-ctx.Done():
			return

		case <-m.shutdownCh:
			return
		}
	}
}

func (m *Manager) dispatchBatch(batch []repository.LifecycleEvent) {
	batchCopy := make([]repository.LifecycleEvent, len(batch))
	copy(batchCopy, batch)

	select {
	case m.batchChan <- batchCopy:
	default:
		metrics.LifecycleEventsDroppedTotal.Add(float64(len(batchCopy)))
	}
}

func (m *Manager) runWorker(ctx context.Context, id int) {
	defer m.wg.Done()

	for {
		select {
		case batch, ok := <-m.batchChan:
			if !ok {
				log.Printf("Event worker %d exiting", id)
				return
			}
			m.sendBatch(ctx, batch)
		case <-ctx.Done():
			for {
				select {
				case batch, ok := <-m.batchChan:
					if !ok {
						log.Printf("Event worker %d exiting", id)
						return
					}
					m.sendBatch(context.Background(), batch)
				default:
					log.Printf("Event worker %d exiting", id)
					return
				}
			}
		}
	}
}

func (m *Manager) sendBatch(ctx context.Context, batch []repository.LifecycleEvent) {
	for _, event := range batch {
		value, err := json.Marshal(event)
		if err != nil {
			log.Printf("ERROR: failed to marshal lifecycle event for errand %s: %v", event.ErrandID, err)
			metrics.LifecycleEventsDroppedTotal.Inc()
			continue
		}

		if err := m.sink.SendMessage(ctx, m.topic, []byte(event.ErrandID), value); err != nil {
			log.Printf("ERROR: failed to emit lifecycle event for errand %s: %v", event.ErrandID, err)
			metrics.LifecycleEventsDroppedTotal.Inc()
		}
	}
}
