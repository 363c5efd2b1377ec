package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueDocuments = "jobs:documents"
	QueueAlertes   = "jobs:alertes"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts,omitempty"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueDocument pushes a PDF generation job (reception or facture).
func (d *Dispatcher) EnqueueDocument(ctx context.Context, jobType string, payload interface{}) error {
	return d.enqueue(ctx, QueueDocuments, jobType, payload)
}

// EnqueueAlerte pushes a manager notification job.
func (d *Dispatcher) EnqueueAlerte(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueAlertes, "ecart_critique", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handlers groups the per-queue job processors wired at startup.
type Handlers struct {
	Documents *DocumentWorker
	Alertes   *NotifyWorker
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers *Handlers) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers *Handlers) {
	queues := []string{QueueDocuments, QueueAlertes}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers *Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	var err error
	switch queue {
	case QueueDocuments:
		if handlers.Documents != nil {
			err = handlers.Documents.Process(ctx, job)
		}
	case QueueAlertes:
		if handlers.Alertes != nil {
			err = handlers.Alertes.Process(ctx, job)
		}
	}
	if err != nil {
		job.Attempts++
		if job.Attempts >= MaxAttempts {
			SendToDLQ(ctx, rdb, queue, job, err.Error())
			return
		}
		log.Warn().Str("type", job.Type).Str("queue", queue).Int("attempts", job.Attempts).
			Err(err).Msg("job failed, re-enqueued")
		if encoded, mErr := json.Marshal(job); mErr == nil {
			_ = rdb.LPush(ctx, queue, encoded).Err()
		}
		return
	}
	log.Info().Str("type", job.Type).Str("queue", queue).Msg("job processed")
}
