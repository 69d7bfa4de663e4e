package store

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"repair-system/internal/entities"
	"repair-system/internal/sheetdb"
)

// Snapshot is the full in-memory copy of the remote sheets. Callers treat a
// snapshot as read-only; mutations go through the Store methods.
type Snapshot struct {
	Equipments     []entities.Equipment
	Workshops      []entities.Workshop
	RepairRequests []entities.RepairRequest
	Users          []entities.User
	Settings       entities.Settings
}

// Store caches the whole remote dataset. The consistency policy is
// deliberately blunt: every mutation performs one remote call and then
// refetches everything before returning, trading efficiency for the absence
// of local merge logic. Last-writer-wins between clients is accepted.
type Store struct {
	client sheetdb.Client
	logger *zap.Logger

	mu   sync.RWMutex
	snap Snapshot
}

func NewStore(client sheetdb.Client, logger *zap.Logger) *Store {
	return &Store{client: client, logger: logger}
}

// Refresh replaces the snapshot with the current remote state. A fault list
// that fails to decode is logged and replaced with an empty list for that
// record only; the fetch itself never fails over one bad row.
func (s *Store) Refresh(ctx context.Context) error {
	data, err := s.client.GetAllData(ctx)
	if err != nil {
		return err
	}

	requests := make([]entities.RepairRequest, 0, len(data.RepairRequests))
	for _, raw := range data.RepairRequests {
		faults, err := sheetdb.DecodeFaults(raw.Faults)
		if err != nil {
			s.logger.Warn("failed to decode faults, substituting empty list",
				zap.String("requestId", raw.ID), zap.Error(err))
			faults = []entities.Fault{}
		}
		requests = append(requests, raw.Request(faults))
	}

	snap := Snapshot{
		Equipments:     data.Equipments,
		Workshops:      data.Workshops,
		RepairRequests: requests,
		Users:          data.Users,
	}
	if data.Settings != nil {
		snap.Settings = *data.Settings
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the cached dataset.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Equipments:     append([]entities.Equipment(nil), s.snap.Equipments...),
		Workshops:      append([]entities.Workshop(nil), s.snap.Workshops...),
		RepairRequests: append([]entities.RepairRequest(nil), s.snap.RepairRequests...),
		Users:          append([]entities.User(nil), s.snap.Users...),
		Settings:       s.snap.Settings,
	}
}

// Create sends one CREATE to the remote sheet, then reloads the snapshot.
func (s *Store) Create(ctx context.Context, sheetName string, payload interface{}) error {
	if err := s.client.Create(ctx, sheetName, payload); err != nil {
		return err
	}
	return s.reload(ctx, "create", sheetName)
}

// Update sends one UPDATE to the remote sheet, then reloads the snapshot.
func (s *Store) Update(ctx context.Context, sheetName string, payload interface{}) error {
	if err := s.client.Update(ctx, sheetName, payload); err != nil {
		return err
	}
	return s.reload(ctx, "update", sheetName)
}

// Delete sends one DELETE to the remote sheet, then reloads the snapshot.
func (s *Store) Delete(ctx context.Context, sheetName string, id string) error {
	if err := s.client.Delete(ctx, sheetName, id); err != nil {
		return err
	}
	return s.reload(ctx, "delete", sheetName)
}

// ErrStaleSnapshot marks a mutation whose remote write succeeded but whose
// follow-up refetch failed: the remote holds the change, the local snapshot
// is stale. Callers must not undo speculative state (e.g. the job-card
// counter) on this error.
var ErrStaleSnapshot = fmt.Errorf("write applied but snapshot reload failed")

// reload is the explicit invalidate-and-reload policy applied after every
// successful write.
func (s *Store) reload(ctx context.Context, op, sheetName string) error {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Error("snapshot reload failed after write",
			zap.String("op", op), zap.String("sheet", sheetName), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrStaleSnapshot, err)
	}
	return nil
}
