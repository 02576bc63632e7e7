package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/owenj053/netone-backend/internal/config"
	"github.com/owenj053/netone-backend/internal/events"
	"github.com/owenj053/netone-backend/internal/observability"
	"github.com/owenj053/netone-backend/internal/service"
)

// jobTimeout bounds one enrichment attempt end to end.
const jobTimeout = 30 * time.Second

// EnrichmentWorker runs weather enrichment off the request path. Ticket
// creation publishes an event; the handler enqueues the ticket id and returns
// immediately. A full queue drops the job rather than block the publisher.
type EnrichmentWorker struct {
	enrichment *service.EnrichmentService
	logger     *zap.Logger
	metrics    *observability.Metrics
	limiter    *rate.Limiter

	queue chan int64
	wg    sync.WaitGroup
	once  sync.Once

	workers int
}

// NewEnrichmentWorker constructs the worker.
func NewEnrichmentWorker(cfg config.EnrichmentConfig, enrichment *service.EnrichmentService, logger *zap.Logger, metrics *observability.Metrics) *EnrichmentWorker {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 2
	}
	callsPerSecond := cfg.ProviderCallsPerS
	if callsPerSecond <= 0 {
		callsPerSecond = 5
	}
	return &EnrichmentWorker{
		enrichment: enrichment,
		logger:     logger,
		metrics:    metrics,
		limiter:    rate.NewLimiter(rate.Limit(callsPerSecond), 1),
		queue:      make(chan int64, queueSize),
		workers:    workers,
	}
}

// Register subscribes the worker to ticket creation events.
func (w *EnrichmentWorker) Register(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, func(_ context.Context, event events.Event) error {
		w.Enqueue(event.TicketID)
		return nil
	})
}

// Enqueue schedules enrichment for a ticket without ever blocking the
// caller. Overflow is dropped: enrichment is best-effort by contract.
func (w *EnrichmentWorker) Enqueue(ticketID int64) {
	select {
	case w.queue <- ticketID:
	default:
		w.metrics.RecordEnrichment(service.EnrichmentOutcomeDropped)
		w.logger.Warn("enrichment queue full, dropping job", zap.Int64("ticket_id", ticketID))
	}
}

// Start launches the worker goroutines. They drain the queue until Stop is
// called or ctx is cancelled.
func (w *EnrichmentWorker) Start(ctx context.Context) {
	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.run(ctx)
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (w *EnrichmentWorker) Stop() {
	w.once.Do(func() {
		close(w.queue)
	})
	w.wg.Wait()
}

func (w *EnrichmentWorker) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ticketID, ok := <-w.queue:
			if !ok {
				return
			}
			w.process(ctx, ticketID)
		}
	}
}

func (w *EnrichmentWorker) process(ctx context.Context, ticketID int64) {
	if err := w.limiter.Wait(ctx); err != nil {
		return
	}
	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), jobTimeout)
	defer cancel()

	if err := w.enrichment.EnrichTicket(jobCtx, ticketID); err != nil {
		// Failure stays here: the ticket creator already has their response.
		w.logger.Warn("ticket enrichment failed",
			zap.Int64("ticket_id", ticketID),
			zap.Error(err))
	}
}
