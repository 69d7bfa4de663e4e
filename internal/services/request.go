package services

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/sheetdb"
	"repair-system/internal/store"
	apperrors "repair-system/pkg/errors"
)

// Job-card numbers start above this base regardless of remote data.
const jobCardBase = 262000

const (
	maxFaults = 10
	minFaults = 1
)

type RequestServiceInterface interface {
	ListRequests(ctx context.Context, filter dto.RequestFilterDTO) ([]entities.RepairRequest, error)
	FindRequest(ctx context.Context, id string) (*entities.RepairRequest, error)
	CheckPending(ctx context.Context, equipmentID string) (*dto.PendingCheckDTO, error)
	CreateRequest(ctx context.Context, payload dto.CreateRepairRequestDTO) (*entities.RepairRequest, error)
	UpdateRequest(ctx context.Context, id string, payload dto.UpdateRepairRequestDTO) (*entities.RepairRequest, error)
	CompleteRequest(ctx context.Context, id string, payload dto.CompleteRepairRequestDTO) (*entities.RepairRequest, error)
	Dashboard(ctx context.Context) (*dto.DashboardDTO, error)
}

type RequestService struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time

	// Job-card counter. Seeded lazily from the snapshot, then advanced
	// locally; a failed create hands its number back.
	counterMu   sync.Mutex
	lastJobCard int64
}

func NewRequestService(st *store.Store, logger *zap.Logger) *RequestService {
	return &RequestService{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

func (s *RequestService) ListRequests(ctx context.Context, filter dto.RequestFilterDTO) ([]entities.RepairRequest, error) {
	snap := s.store.Snapshot()

	out := make([]entities.RepairRequest, 0, len(snap.RepairRequests))
	for _, r := range snap.RepairRequests {
		if filter.EquipmentID != "" && r.EquipmentID != filter.EquipmentID {
			continue
		}
		if filter.WorkshopID != "" && r.WorkshopID != filter.WorkshopID {
			continue
		}
		if filter.Month != "" && !strings.HasPrefix(r.DateIn, filter.Month) {
			continue
		}
		if filter.Status != "" && string(r.Status) != filter.Status {
			continue
		}
		out = append(out, r)
	}

	// Newest first. DateIn/TimeIn are ISO-shaped, so string order is
	// chronological order.
	sort.Slice(out, func(i, j int) bool {
		if out[i].DateIn != out[j].DateIn {
			return out[i].DateIn > out[j].DateIn
		}
		return out[i].TimeIn > out[j].TimeIn
	})
	return out, nil
}

// FindRequest is the "find job card" search: exact id match against the
// snapshot, no remote lookup.
func (s *RequestService) FindRequest(ctx context.Context, id string) (*entities.RepairRequest, error) {
	for _, r := range s.store.Snapshot().RepairRequests {
		if r.ID == strings.TrimSpace(id) {
			req := r
			return &req, nil
		}
	}
	return nil, apperrors.NewNotFoundError("job card not found")
}

// CheckPending reports the first Pending request for an equipment, if any.
// Clients use it to force the add-fault-vs-new-request choice before
// opening a blank form for equipment that is already in the workshop.
func (s *RequestService) CheckPending(ctx context.Context, equipmentID string) (*dto.PendingCheckDTO, error) {
	if equipmentID == "" {
		return nil, apperrors.NewBadRequestError("equipment_id is required", nil)
	}
	for _, r := range s.store.Snapshot().RepairRequests {
		if r.EquipmentID == equipmentID && r.Status == entities.StatusPending {
			req := r
			return &dto.PendingCheckDTO{HasPending: true, Request: &req}, nil
		}
	}
	return &dto.PendingCheckDTO{HasPending: false}, nil
}

// validFaults drops rows with a blank description (they are form leftovers,
// not errors) and requires a workshop on every remaining fault.
func validFaults(inputs []dto.FaultInputDTO) ([]entities.Fault, error) {
	faults := make([]entities.Fault, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.Description) == "" {
			continue
		}
		if in.WorkshopID == "" {
			return nil, apperrors.NewBadRequestError("every fault needs a workshop assigned", nil)
		}
		faults = append(faults, entities.Fault{
			ID:           uuid.NewString(),
			Description:  strings.TrimSpace(in.Description),
			WorkshopID:   in.WorkshopID,
			MechanicName: in.MechanicName,
		})
	}
	if len(faults) < minFaults {
		return nil, apperrors.NewBadRequestError("at least one fault with a description is required", nil)
	}
	if len(faults) > maxFaults {
		return nil, apperrors.NewBadRequestError("a job card holds at most 10 faults", nil)
	}
	return faults, nil
}

func (s *RequestService) equipmentExists(id string) bool {
	for _, e := range s.store.Snapshot().Equipments {
		if e.ID == id {
			return true
		}
	}
	return false
}

// allocateJobCard hands out the next number. The counter seeds itself from
// the base, the persisted settings mark and the highest numeric request id
// already on the sheet, whichever is largest.
func (s *RequestService) allocateJobCard() int64 {
	s.counterMu.Lock()
	defer s.counterMu.Unlock()

	if s.lastJobCard == 0 {
		snap := s.store.Snapshot()
		seed := int64(jobCardBase)
		if snap.Settings.JobCardStartNumber > seed {
			seed = snap.Settings.JobCardStartNumber
		}
		for _, r := range snap.RepairRequests {
			if n, err := strconv.ParseInt(r.ID, 10, 64); err == nil && n > seed {
				seed = n
			}
		}
		s.lastJobCard = seed
	}

	s.lastJobCard++
	return s.lastJobCard
}

// releaseJobCard undoes an allocation whose create never reached the remote
// store, so the number is reused by the next attempt.
func (s *RequestService) releaseJobCard(n int64) {
	s.counterMu.Lock()
	defer s.counterMu.Unlock()
	if s.lastJobCard == n {
		s.lastJobCard--
	}
}

func (s *RequestService) CreateRequest(ctx context.Context, payload dto.CreateRepairRequestDTO) (*entities.RepairRequest, error) {
	if strings.TrimSpace(payload.DriverName) == "" {
		return nil, apperrors.NewBadRequestError("driver name is required", nil)
	}
	if !s.equipmentExists(payload.EquipmentID) {
		return nil, apperrors.NewBadRequestError("selected equipment does not exist", nil)
	}

	faults, err := validFaults(payload.Faults)
	if err != nil {
		return nil, err
	}

	number := s.allocateJobCard()
	now := s.now()
	request := entities.RepairRequest{
		ID:          strconv.FormatInt(number, 10),
		EquipmentID: payload.EquipmentID,
		DriverName:  strings.TrimSpace(payload.DriverName),
		Mileage:     payload.Mileage,
		Purpose:     entities.Purpose(payload.Purpose),
		Faults:      faults,
		DateIn:      now.Format("2006-01-02"),
		TimeIn:      now.Format("15:04:05"),
		Status:      entities.StatusPending,
		WorkshopID:  faults[0].WorkshopID,
	}

	record, err := sheetdb.EncodeRequest(request)
	if err != nil {
		s.releaseJobCard(number)
		return nil, apperrors.NewBadRequestError("failed to encode request", err)
	}

	if err := s.store.Create(ctx, sheetdb.SheetRepairRequests, record); err != nil {
		if !errors.Is(err, store.ErrStaleSnapshot) {
			// The write never landed, so the number was not consumed.
			s.releaseJobCard(number)
		}
		s.logger.Error("failed to create repair request", zap.String("id", request.ID), zap.Error(err))
		return nil, apperrors.NewRemoteError("failed to save the new request", err)
	}

	s.persistJobCardMark(ctx, number)

	s.logger.Info("job card created",
		zap.String("id", request.ID), zap.String("equipment", request.EquipmentID),
		zap.Int("faults", len(faults)))
	return &request, nil
}

// persistJobCardMark writes the new high-water mark to the Settings sheet.
// Best-effort: the counter also reseeds from existing request ids, so a
// lost mark cannot cause reuse.
func (s *RequestService) persistJobCardMark(ctx context.Context, number int64) {
	if err := s.store.Update(ctx, sheetdb.SheetSettings, entities.Settings{JobCardStartNumber: number}); err != nil {
		s.logger.Warn("failed to persist job card high-water mark",
			zap.Int64("number", number), zap.Error(err))
	}
}

// UpdateRequest is the append-fault edit mode: new field values and the
// merged fault list land on the stored request, whose identity fields
// (id, equipment, dateIn, timeIn, status) are preserved.
func (s *RequestService) UpdateRequest(ctx context.Context, id string, payload dto.UpdateRepairRequestDTO) (*entities.RepairRequest, error) {
	original, err := s.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if original.Status != entities.StatusPending {
		return nil, apperrors.NewConflictError("only pending job cards can be edited")
	}
	if strings.TrimSpace(payload.DriverName) == "" {
		return nil, apperrors.NewBadRequestError("driver name is required", nil)
	}

	faults, err := validFaults(payload.Faults)
	if err != nil {
		return nil, err
	}

	merged := *original
	merged.DriverName = strings.TrimSpace(payload.DriverName)
	merged.Mileage = payload.Mileage
	merged.Purpose = entities.Purpose(payload.Purpose)
	merged.Faults = faults
	merged.WorkshopID = faults[0].WorkshopID

	record, err := sheetdb.EncodeRequest(merged)
	if err != nil {
		return nil, apperrors.NewBadRequestError("failed to encode request", err)
	}
	if err := s.store.Update(ctx, sheetdb.SheetRepairRequests, record); err != nil {
		s.logger.Error("failed to update repair request", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewRemoteError("failed to save the updated request", err)
	}

	s.logger.Info("job card updated", zap.String("id", id), zap.Int("faults", len(faults)))
	return &merged, nil
}

// CompleteRequest performs the one-way Pending -> Completed transition.
// Every fault must receive a non-empty work narrative; blank part rows are
// filtered out; dateOut/timeOut default to now when the request had none.
func (s *RequestService) CompleteRequest(ctx context.Context, id string, payload dto.CompleteRepairRequestDTO) (*entities.RepairRequest, error) {
	original, err := s.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if original.Status == entities.StatusCompleted {
		return nil, apperrors.NewConflictError("job card is already completed")
	}

	byID := make(map[string]dto.CompletionFaultDTO, len(payload.Faults))
	for _, f := range payload.Faults {
		byID[f.FaultID] = f
	}

	completed := *original
	completed.Faults = make([]entities.Fault, len(original.Faults))
	for i, fault := range original.Faults {
		done, ok := byID[fault.ID]
		if !ok || strings.TrimSpace(done.WorkDone) == "" {
			return nil, apperrors.NewBadRequestError("work done is required for every fault", nil)
		}
		fault.WorkDone = strings.TrimSpace(done.WorkDone)
		fault.PartsUsed = cleanParts(done.PartsUsed)
		completed.Faults[i] = fault
	}

	now := s.now()
	completed.DateOut = payload.DateOut
	completed.TimeOut = payload.TimeOut
	if completed.DateOut == "" {
		completed.DateOut = now.Format("2006-01-02")
	}
	if completed.TimeOut == "" {
		completed.TimeOut = now.Format("15:04:05")
	}
	completed.Status = entities.StatusCompleted

	record, err := sheetdb.EncodeRequest(completed)
	if err != nil {
		return nil, apperrors.NewBadRequestError("failed to encode request", err)
	}
	if err := s.store.Update(ctx, sheetdb.SheetRepairRequests, record); err != nil {
		s.logger.Error("failed to complete repair request", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewRemoteError("failed to save the completed request", err)
	}

	s.logger.Info("job card completed", zap.String("id", id), zap.String("dateOut", completed.DateOut))
	return &completed, nil
}

// cleanParts keeps only rows where both name and quantity are filled in.
func cleanParts(parts []dto.PartInputDTO) []entities.Part {
	out := make([]entities.Part, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Quantity) == "" {
			continue
		}
		out = append(out, entities.Part{
			ID:       uuid.NewString(),
			Name:     strings.TrimSpace(p.Name),
			Quantity: strings.TrimSpace(p.Quantity),
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (s *RequestService) Dashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	snap := s.store.Snapshot()
	out := &dto.DashboardDTO{
		TotalEquipment: len(snap.Equipments),
		TotalWorkshops: len(snap.Workshops),
	}
	for _, r := range snap.RepairRequests {
		switch r.Status {
		case entities.StatusPending:
			out.PendingRequests++
		case entities.StatusCompleted:
			out.CompletedRequests++
		}
	}
	return out, nil
}
