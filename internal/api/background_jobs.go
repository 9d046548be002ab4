package api

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// EmbeddingJob asks the worker to embed one uploaded candidate
type EmbeddingJob struct {
	CandidateID string
	Timestamp   time.Time
}

// StartBackgroundWorkers runs the embedding worker until ctx is done.
// Without an embedder there is nothing to run.
func (a *API) StartBackgroundWorkers(ctx context.Context) {
	if a.embedder == nil {
		a.log.Info("embedding worker disabled, no embedder configured")
		return
	}
	go a.embeddingWorker(ctx)
	a.log.Info("background workers started")
}

// embeddingWorker processes embedding jobs from the queue
func (a *API) embeddingWorker(ctx context.Context) {
	log := a.log.Named("embedding_worker")
	limiter := time.NewTicker(a.embeddingInterval)
	defer limiter.Stop()

	var success, failed int
	for {
		select {
		case <-ctx.Done():
			log.Info("stopped", zap.Int("embedded", success), zap.Int("failed", failed))
			return
		case job := <-a.embeddingQueue:
			if err := a.embedder.EmbedCandidate(ctx, job.CandidateID); err != nil {
				failed++
				log.Warn("failed to embed candidate", zap.String("candidate_id", job.CandidateID), zap.Error(err))
			} else {
				success++
				log.Debug("candidate embedded",
					zap.String("candidate_id", job.CandidateID),
					zap.Duration("latency", time.Since(job.Timestamp)))
			}

			// Rate limiting for the embeddings API
			select {
			case <-ctx.Done():
			case <-limiter.C:
			}
		}
	}
}

// QueueEmbeddingJob adds a candidate to the background queue. It never blocks
// and reports whether the job was accepted.
func (a *API) QueueEmbeddingJob(candidateID string) bool {
	if a.embedder == nil {
		return false
	}

	job := EmbeddingJob{
		CandidateID: candidateID,
		Timestamp:   time.Now(),
	}

	// Non-blocking send
	select {
	case a.embeddingQueue <- job:
		return true
	default:
		a.log.Warn("embedding queue full, dropping job", zap.String("candidate_id", candidateID))
		return false
	}
}
