package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"interviewsystem/api/internal/repositories"
)

// Indexer embeds saved interview responses in the background and upserts
// them into the vector index. Indexing is best-effort: a failed response
// keeps its indexed=false flag and the poller picks it up again later, so
// the save path never depends on the index being reachable.
type Indexer interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(responseID uuid.UUID)
}

type indexer struct {
	responseRepo repositories.InterviewResponseRepository
	gemini       GeminiService
	index        ResponseIndex
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
}

func NewIndexer(
	responseRepo repositories.InterviewResponseRepository,
	gemini GeminiService,
	index ResponseIndex,
	concurrency int,
	pollInterval time.Duration,
) Indexer {
	return &indexer{
		responseRepo: responseRepo,
		gemini:       gemini,
		index:        index,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
	}
}

// Start implements Indexer.
func (w *indexer) Start(ctx context.Context) {
	log.Printf("🚀 Starting indexer with %d workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollUnindexed(ctx)
}

// Stop implements Indexer.
func (w *indexer) Stop() {
	log.Println("🛑 Stopping indexer...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Indexer stopped")
}

// Enqueue implements Indexer.
func (w *indexer) Enqueue(responseID uuid.UUID) {
	select {
	case w.jobQueue <- responseID:
	case <-w.stopChan:
		log.Printf("⚠️  Indexer stopped, cannot enqueue response %s\n", responseID)
	default:
		// Queue full: the poller will catch this response later.
	}
}

func (w *indexer) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case responseID := <-w.jobQueue:
			if err := w.indexResponse(ctx, responseID); err != nil {
				log.Printf("⚠️  Indexer #%d failed to index response %s: %v\n", workerID, responseID, err)
			}
		}
	}
}

func (w *indexer) pollUnindexed(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			pending, err := w.responseRepo.FindUnindexed(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch unindexed responses: %v\n", err)
				continue
			}
			for _, response := range pending {
				w.Enqueue(response.ID)
			}
		}
	}
}

func (w *indexer) indexResponse(ctx context.Context, responseID uuid.UUID) error {
	response, err := w.responseRepo.FindByID(responseID)
	if err != nil {
		return fmt.Errorf("failed to load response: %w", err)
	}
	if response.Indexed {
		return nil
	}

	embedding, err := w.gemini.GenerateEmbedding(ctx, response.Question+"\n"+response.Answer)
	if err != nil {
		return fmt.Errorf("failed to embed response: %w", err)
	}

	if err := w.index.UpsertResponse(ctx, response, embedding); err != nil {
		return fmt.Errorf("failed to upsert response: %w", err)
	}

	if err := w.responseRepo.MarkIndexed(response.ID); err != nil {
		return fmt.Errorf("failed to mark response indexed: %w", err)
	}

	return nil
}
