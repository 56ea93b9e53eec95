package diagnostics

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/l1jgo/ecsrun/internal/core/ecs"
)

type sample struct {
	systemID    string
	elapsedMs   float64
	entityCount int
	takenAt     time.Time
}

// PostgresSink batches per-system timing samples and flushes them to
// Postgres on a fixed interval or when a batch fills, whichever comes
// first. Record is called from the scheduler's own goroutine (single
// writer) and appends to the current batch; when that fills the batch,
// Record flushes it synchronously on the caller's goroutine. The interval
// flush runs on a background goroutine coordinated by an errgroup so Close
// can wait for the last flush to land before returning.
type PostgresSink struct {
	pool *pgxpool.Pool
	log  *zap.Logger

	batchSize int
	interval  time.Duration

	mu      sync.Mutex
	pending []sample

	group  *errgroup.Group
	cancel context.CancelFunc
}

// NewPostgresSink starts the background flush loop and returns a sink
// ready for World.SetTimingSink.
func NewPostgresSink(pool *pgxpool.Pool, log *zap.Logger, batchSize int, interval time.Duration) *PostgresSink {
	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	s := &PostgresSink{
		pool:      pool,
		log:       log,
		batchSize: batchSize,
		interval:  interval,
		group:     group,
		cancel:    cancel,
	}

	group.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.flush(context.Background())
				return nil
			case <-ticker.C:
				s.flush(ctx)
			}
		}
	})

	return s
}

// Record implements ecs.TimingSink.
func (s *PostgresSink) Record(systemID string, elapsedMs float64, entityCount int) {
	s.mu.Lock()
	s.pending = append(s.pending, sample{
		systemID:    systemID,
		elapsedMs:   elapsedMs,
		entityCount: entityCount,
		takenAt:     time.Now(),
	})
	full := len(s.pending) >= s.batchSize
	s.mu.Unlock()

	if full {
		s.flush(context.Background())
	}
}

func (s *PostgresSink) flush(ctx context.Context) {
	s.mu.Lock()
	if len(s.pending) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	batchID := uuid.New()
	rows := make([][]any, len(batch))
	for i, smp := range batch {
		rows[i] = []any{batchID, smp.systemID, smp.elapsedMs, smp.entityCount, smp.takenAt}
	}

	_, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"system_timing"},
		[]string{"batch_id", "system_id", "elapsed_ms", "entity_count", "taken_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		s.log.Error("diagnostics: flush timing batch failed", zap.Error(err), zap.Int("rows", len(rows)))
	}
}

// Close stops the background flush loop and waits for the final flush.
func (s *PostgresSink) Close() error {
	s.cancel()
	return s.group.Wait()
}

var _ ecs.TimingSink = (*PostgresSink)(nil)
