package worker

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"chatrelay-backend/internal/models"
)

type messageInserter interface {
	Insert(ctx context.Context, rec *models.MessageRecord) error
}

// HistoryWriter persists chat records off the request path. Writes are
// best-effort: a failed or dropped write is logged and never reaches the
// client, whose reply has already been sent.
type HistoryWriter struct {
	repo         messageInserter
	jobs         chan models.MessageRecord
	workerCount  int
	writeTimeout time.Duration
	wg           sync.WaitGroup

	// mu orders Record against the channel close in Stop.
	mu      sync.RWMutex
	stopped atomic.Bool
}

func NewHistoryWriter(repo messageInserter, workerCount, queueSize int) *HistoryWriter {
	if workerCount <= 0 {
		workerCount = 2
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	return &HistoryWriter{
		repo:         repo,
		jobs:         make(chan models.MessageRecord, queueSize),
		workerCount:  workerCount,
		writeTimeout: 10 * time.Second,
	}
}

func (w *HistoryWriter) Start() {
	for i := 0; i < w.workerCount; i++ {
		w.wg.Add(1)
		go w.worker(i)
	}
	log.Printf("Started %d history writer goroutines", w.workerCount)
}

// Record enqueues one record without blocking. Records offered after Stop
// or while the queue is full are dropped.
func (w *HistoryWriter) Record(rec models.MessageRecord) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped.Load() {
		log.Println("History writer stopped; dropping record")
		return
	}
	select {
	case w.jobs <- rec:
	default:
		log.Println("History queue full; dropping record")
	}
}

// Stop drains the queue and waits for in-flight writes to finish.
func (w *HistoryWriter) Stop() {
	w.mu.Lock()
	alreadyStopped := w.stopped.Swap(true)
	if !alreadyStopped {
		close(w.jobs)
	}
	w.mu.Unlock()

	if !alreadyStopped {
		w.wg.Wait()
	}
}

func (w *HistoryWriter) worker(id int) {
	defer w.wg.Done()

	for rec := range w.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), w.writeTimeout)
		if err := w.repo.Insert(ctx, &rec); err != nil {
			log.Printf("History writer %d: failed to store record: %v", id, err)
		}
		cancel()
	}
}
