package seatsvc

import (
	"context"
	"time"

	"github.com/rzbill/usher/internal/runtime"
	logpkg "github.com/rzbill/usher/pkg/log"
)

// Service is the seat allocation engine. It validates coordinates, resolves
// row keys, and delegates the atomic bit mutations to the runtime's row
// store. It holds no reservation state of its own: the row bit vectors are
// the single source of truth.
type Service struct {
	rt     *runtime.Runtime
	logger logpkg.Logger
}

// New returns a Service using a default logger.
func New(rt *runtime.Runtime) *Service {
	return NewWithLogger(rt, nil)
}

// NewWithLogger constructs the service with an injected logger.
func NewWithLogger(rt *runtime.Runtime, logger logpkg.Logger) *Service {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("seats"))
	}
	return &Service{rt: rt, logger: logger}
}

// opCtx bounds a store-facing call by the configured operation timeout. A
// timed-out call surfaces as ErrStoreUnavailable from the store adapter.
func (s *Service) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.rt.Config().OpTimeout())
}

func (s *Service) validateCoords(zone, row int) error {
	cfg := s.rt.Config()
	if zone < 1 || zone > cfg.Zones || row < 1 || row > cfg.RowsPerZone {
		return ErrOutOfRange
	}
	return nil
}

// ReserveBlock finds the first contiguous run of count free seats in the
// row, marks it occupied, and returns its start index. Returns NoSeat when
// no run of that length exists. First fit, lowest index wins.
func (s *Service) ReserveBlock(ctx context.Context, zone, row, count int) (int, error) {
	if err := s.validateCoords(zone, row); err != nil {
		return NoSeat, err
	}
	cfg := s.rt.Config()
	if count < 1 || count > cfg.MaxBlock || count > cfg.SeatsPerRow {
		return NoSeat, ErrInvalidRange
	}

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()
	started := time.Now()
	start, err := s.rt.Store().ReserveFirstFree(opCtx, rowKey(cfg.EventID, zone, row), cfg.SeatsPerRow, count)
	if err != nil {
		s.logger.Warn("reserve block failed",
			logpkg.Int("zone", zone), logpkg.Int("row", row), logpkg.Err(err))
		return NoSeat, err
	}
	s.logger.Debug("reserve block",
		logpkg.Int("zone", zone), logpkg.Int("row", row), logpkg.Int("count", count),
		logpkg.Int("start", start), logpkg.Dur("dur", time.Since(started)))
	return start, nil
}

// ReserveExact marks seats [start, start+count) occupied if every one of
// them is free, returning start. Returns NoSeat when any seat in the range
// is already taken; the row is left untouched on that path.
func (s *Service) ReserveExact(ctx context.Context, zone, row, start, count int) (int, error) {
	if err := s.validateCoords(zone, row); err != nil {
		return NoSeat, err
	}
	cfg := s.rt.Config()
	if start < 0 || count < 1 || start+count > cfg.SeatsPerRow {
		return NoSeat, ErrInvalidRange
	}

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()
	got, err := s.rt.Store().ReserveRange(opCtx, rowKey(cfg.EventID, zone, row), cfg.SeatsPerRow, start, count)
	if err != nil {
		s.logger.Warn("reserve exact failed",
			logpkg.Int("zone", zone), logpkg.Int("row", row), logpkg.Err(err))
		return NoSeat, err
	}
	s.logger.Debug("reserve exact",
		logpkg.Int("zone", zone), logpkg.Int("row", row), logpkg.Int("start", start),
		logpkg.Int("count", count), logpkg.Int("got", got))
	return got, nil
}

// RowOccupancy counts occupied seats in one row. The count is a momentary
// snapshot and may race with concurrent reservations.
func (s *Service) RowOccupancy(ctx context.Context, zone, row int) (RowOccupancy, error) {
	if err := s.validateCoords(zone, row); err != nil {
		return RowOccupancy{}, err
	}
	cfg := s.rt.Config()

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()
	occupied, err := s.rt.Store().CountRow(opCtx, rowKey(cfg.EventID, zone, row))
	if err != nil {
		return RowOccupancy{}, err
	}
	return RowOccupancy{
		Zone:      zone,
		Row:       row,
		Occupied:  occupied,
		Total:     cfg.SeatsPerRow,
		Available: cfg.SeatsPerRow - occupied,
	}, nil
}

// AggregateOccupancy sums occupied seats across every row in the inventory.
// The per-row counts are issued as one batch; no cross-row isolation is
// taken, so the aggregate is approximate under concurrent writes.
func (s *Service) AggregateOccupancy(ctx context.Context) (AggregateOccupancy, error) {
	cfg := s.rt.Config()
	keys := allRowKeys(cfg.EventID, cfg.Zones, cfg.RowsPerZone)

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()
	counts, err := s.rt.Store().CountRows(opCtx, keys)
	if err != nil {
		s.logger.Warn("aggregate occupancy failed", logpkg.Err(err))
		return AggregateOccupancy{}, err
	}
	occupied := 0
	for _, n := range counts {
		occupied += n
	}
	return AggregateOccupancy{
		TotalSeats:     cfg.TotalSeats(),
		OccupiedSeats:  occupied,
		AvailableSeats: cfg.TotalSeats() - occupied,
		ZonesChecked:   cfg.Zones,
		RowsChecked:    cfg.TotalRows(),
	}, nil
}

// InitializeAll materializes every row at exactly SeatsPerRow bits, all
// zero. Idempotent: rows that already exist keep their occupied bits.
// Returns the number of rows visited.
func (s *Service) InitializeAll(ctx context.Context) (int, error) {
	cfg := s.rt.Config()
	started := time.Now()
	initialized := 0
	for zone := 1; zone <= cfg.Zones; zone++ {
		for row := 1; row <= cfg.RowsPerZone; row++ {
			opCtx, cancel := s.opCtx(ctx)
			err := s.rt.Store().EnsureRow(opCtx, rowKey(cfg.EventID, zone, row), cfg.SeatsPerRow)
			cancel()
			if err != nil {
				s.logger.Warn("initialize failed",
					logpkg.Int("zone", zone), logpkg.Int("row", row), logpkg.Err(err))
				return initialized, err
			}
			initialized++
		}
	}
	s.logger.Info("inventory initialized",
		logpkg.Int("rows", initialized), logpkg.Dur("dur", time.Since(started)))
	return initialized, nil
}

// ResetAll removes the backing state for every row in the inventory.
// Returns the number of rows cleared.
func (s *Service) ResetAll(ctx context.Context) (int, error) {
	cfg := s.rt.Config()
	keys := allRowKeys(cfg.EventID, cfg.Zones, cfg.RowsPerZone)

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := s.rt.Store().DeleteRows(opCtx, keys); err != nil {
		s.logger.Warn("reset failed", logpkg.Err(err))
		return 0, err
	}
	s.logger.Info("inventory reset", logpkg.Int("rows", len(keys)))
	return len(keys), nil
}
