// Package worker runs the OCR import queue: a FIFO of uploaded sticker
// photos drained by a single consumer goroutine, so at most one OCR call
// is ever in flight. The external provider's rate limiter is respected
// by construction, with a fixed-delay bounded retry as backstop.
package worker

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jmoralesv/vin-tracker/internal/imaging"
	"github.com/jmoralesv/vin-tracker/internal/ocr"
	"github.com/jmoralesv/vin-tracker/internal/vin"
)

// Per-image lifecycle: pending -> analyzing -> detected | manual_required
// | error, with retrying inserted on rate-limit hits.
type Status string

const (
	StatusPending        Status = "pending"
	StatusAnalyzing      Status = "analyzing"
	StatusRetrying       Status = "retrying"
	StatusDetected       Status = "detected"
	StatusManualRequired Status = "manual_required"
	StatusError          Status = "error"
)

// The free OCR tier recovers within 20 seconds, and 15 attempts bounds
// the wait at five minutes per image.
const (
	DefaultRetryDelay = 20 * time.Second
	DefaultMaxRetries = 15
)

// Job is the externally visible state of one queued image.
type Job struct {
	ID           string `json:"id"`
	Status       Status `json:"status"`
	VIN          string `json:"vin,omitempty"`
	DetectedType string `json:"detected_type,omitempty"`
	RetryAttempt int    `json:"retry_attempt,omitempty"`
	Error        string `json:"error,omitempty"`
}

type job struct {
	Job
	image    []byte
	enqueued time.Time
}

// OCRClient is what the worker needs from the OCR provider.
type OCRClient interface {
	ParseImage(ctx context.Context, imageBase64, mimeType string) (string, error)
}

type ImportWorker struct {
	mu    sync.Mutex
	jobs  map[string]*job
	queue []string

	client     OCRClient
	log        *zap.Logger
	retryDelay time.Duration
	maxRetries int

	// wake is buffered so Enqueue never blocks when the worker is busy.
	wake chan struct{}
}

func NewImportWorker(client OCRClient, log *zap.Logger) *ImportWorker {
	return &ImportWorker{
		jobs:       make(map[string]*job),
		client:     client,
		log:        log,
		retryDelay: DefaultRetryDelay,
		maxRetries: DefaultMaxRetries,
		wake:       make(chan struct{}, 1),
	}
}

// Enqueue adds one image to the queue and returns its job id. Adding
// while the worker is busy just extends the queue; no goroutine is
// spawned per image.
func (w *ImportWorker) Enqueue(image []byte) string {
	id := uuid.NewString()

	w.mu.Lock()
	w.jobs[id] = &job{
		Job:      Job{ID: id, Status: StatusPending},
		image:    image,
		enqueued: time.Now(),
	}
	w.queue = append(w.queue, id)
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
	return id
}

// Remove drops a job whether it is queued, in flight or finished. A
// late OCR result for a removed job is discarded, never surfaced.
func (w *ImportWorker) Remove(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.jobs, id)
	for i, qid := range w.queue {
		if qid == id {
			w.queue = append(w.queue[:i], w.queue[i+1:]...)
			break
		}
	}
}

// RemoveAll clears the queue and all job state.
func (w *ImportWorker) RemoveAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.jobs = make(map[string]*job)
	w.queue = nil
}

// SetVIN applies a manual edit to a job's candidate VIN. The status
// follows the edit: a 17-character value counts as detected.
func (w *ImportWorker) SetVIN(id, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	j, ok := w.jobs[id]
	if !ok {
		return errors.New("job not found")
	}

	cleaned := vin.Normalize(value)
	j.VIN = cleaned
	if vin.ValidLength(cleaned) {
		j.Status = StatusDetected
	} else {
		j.Status = StatusManualRequired
	}
	return nil
}

// Snapshot returns the current state of every job, oldest first.
func (w *ImportWorker) Snapshot() []Job {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Job, 0, len(w.jobs))
	order := make(map[string]time.Time, len(w.jobs))
	for id, j := range w.jobs {
		out = append(out, j.Job)
		order[id] = j.enqueued
	}
	sort.Slice(out, func(i, k int) bool {
		ti, tk := order[out[i].ID], order[out[k].ID]
		if ti.Equal(tk) {
			return out[i].ID < out[k].ID
		}
		return ti.Before(tk)
	})
	return out
}

// Run drains the queue until ctx is cancelled. Call in its own goroutine.
func (w *ImportWorker) Run(ctx context.Context) {
	for {
		id, image, ok := w.pop()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-w.wake:
				continue
			}
		}
		w.process(ctx, id, image)
	}
}

func (w *ImportWorker) pop() (string, []byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for len(w.queue) > 0 {
		id := w.queue[0]
		w.queue = w.queue[1:]
		if j, ok := w.jobs[id]; ok {
			return id, j.image, true
		}
		// removed while queued, skip
	}
	return "", nil, false
}

// setStatus mutates a job unless it was removed mid-flight.
func (w *ImportWorker) setStatus(id string, fn func(*job)) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	j, ok := w.jobs[id]
	if !ok {
		return false
	}
	fn(j)
	return true
}

func (w *ImportWorker) process(ctx context.Context, id string, image []byte) {
	if !w.setStatus(id, func(j *job) { j.Status = StatusAnalyzing }) {
		return
	}

	b64, mime, err := imaging.PrepareForOCR(image)
	if err != nil {
		w.setStatus(id, func(j *job) {
			j.Status = StatusError
			j.Error = err.Error()
		})
		return
	}

	// Bounded retry loop, fixed delay. Explicit iteration rather than
	// recursion so the attempt count is the only growth.
	var text string
	for attempt := 0; ; attempt++ {
		text, err = w.client.ParseImage(ctx, b64, mime)
		if err == nil {
			break
		}
		if !errors.Is(err, ocr.ErrRateLimited) || attempt >= w.maxRetries {
			w.setStatus(id, func(j *job) {
				j.Status = StatusError
				j.Error = err.Error()
			})
			return
		}

		if !w.setStatus(id, func(j *job) {
			j.Status = StatusRetrying
			j.RetryAttempt = attempt + 1
		}) {
			return
		}
		w.log.Info("ocr rate limited, backing off",
			zap.String("job", id), zap.Int("attempt", attempt+1))

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retryDelay):
		}
	}

	candidate, detectedType := vin.Extract(text)
	w.setStatus(id, func(j *job) {
		if candidate != "" {
			j.Status = StatusDetected
			j.VIN = candidate
			j.DetectedType = detectedType
		} else {
			j.Status = StatusManualRequired
			j.VIN = ""
		}
	})
}
