package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/sheetdb"
	"repair-system/internal/store"
	apperrors "repair-system/pkg/errors"
)

type EquipmentServiceInterface interface {
	ListEquipments(ctx context.Context, query string) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, id string) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error)
	DeleteEquipment(ctx context.Context, id string) (*dto.DeleteEquipmentResponseDTO, error)
}

type EquipmentService struct {
	store  *store.Store
	logger *zap.Logger
}

func NewEquipmentService(st *store.Store, logger *zap.Logger) EquipmentServiceInterface {
	return &EquipmentService{store: st, logger: logger}
}

// ListEquipments returns the fleet, optionally narrowed by a
// case-insensitive substring match over equipment number and serial number.
func (s *EquipmentService) ListEquipments(ctx context.Context, query string) ([]entities.Equipment, error) {
	equipments := s.store.Snapshot().Equipments
	if query == "" {
		return equipments, nil
	}

	q := strings.ToLower(query)
	matched := make([]entities.Equipment, 0, len(equipments))
	for _, e := range equipments {
		if strings.Contains(strings.ToLower(e.EquipmentNumber), q) ||
			strings.Contains(strings.ToLower(e.SerialNumber), q) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id string) (*entities.Equipment, error) {
	for _, e := range s.store.Snapshot().Equipments {
		if e.ID == id {
			eq := e
			return &eq, nil
		}
	}
	return nil, apperrors.NewNotFoundError("equipment not found")
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	// Serial numbers are unique across the fleet; checked before any
	// remote call so a rejected create leaves nothing half-done.
	for _, e := range s.store.Snapshot().Equipments {
		if e.SerialNumber == payload.SerialNumber {
			return nil, apperrors.NewConflictError("an equipment with this serial number already exists")
		}
	}

	equipment := entities.Equipment{
		ID:              uuid.NewString(),
		EquipmentType:   entities.EquipmentType(payload.EquipmentType),
		EquipmentNumber: payload.EquipmentNumber,
		Make:            payload.Make,
		ModelNumber:     payload.ModelNumber,
		SerialNumber:    payload.SerialNumber,
		BranchLocation:  payload.BranchLocation,
	}

	if err := s.store.Create(ctx, sheetdb.SheetEquipments, equipment); err != nil {
		s.logger.Error("failed to create equipment", zap.Error(err))
		return nil, apperrors.NewRemoteError("failed to save equipment", err)
	}

	s.logger.Info("equipment created",
		zap.String("id", equipment.ID), zap.String("serial", equipment.SerialNumber))
	return &equipment, nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	current, err := s.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.SerialNumber != nil && *payload.SerialNumber != current.SerialNumber {
		for _, e := range s.store.Snapshot().Equipments {
			if e.ID != id && e.SerialNumber == *payload.SerialNumber {
				return nil, apperrors.NewConflictError("an equipment with this serial number already exists")
			}
		}
		current.SerialNumber = *payload.SerialNumber
	}
	if payload.EquipmentType != nil {
		current.EquipmentType = entities.EquipmentType(*payload.EquipmentType)
	}
	if payload.EquipmentNumber != nil {
		current.EquipmentNumber = *payload.EquipmentNumber
	}
	if payload.Make != nil {
		current.Make = *payload.Make
	}
	if payload.ModelNumber != nil {
		current.ModelNumber = *payload.ModelNumber
	}
	if payload.BranchLocation != nil {
		current.BranchLocation = *payload.BranchLocation
	}

	if err := s.store.Update(ctx, sheetdb.SheetEquipments, *current); err != nil {
		s.logger.Error("failed to update equipment", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewRemoteError("failed to save equipment", err)
	}
	return current, nil
}

// DeleteEquipment removes the equipment even when repair requests still
// reference it; the response carries the orphan count so the caller can
// warn. This mirrors the workshop rule's opposite: equipment history stays
// readable by id, nothing joins on it.
func (s *EquipmentService) DeleteEquipment(ctx context.Context, id string) (*dto.DeleteEquipmentResponseDTO, error) {
	if _, err := s.FindEquipment(ctx, id); err != nil {
		return nil, err
	}

	orphans := 0
	for _, r := range s.store.Snapshot().RepairRequests {
		if r.EquipmentID == id {
			orphans++
		}
	}

	if err := s.store.Delete(ctx, sheetdb.SheetEquipments, id); err != nil {
		s.logger.Error("failed to delete equipment", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewRemoteError("failed to delete equipment", err)
	}

	s.logger.Info("equipment deleted", zap.String("id", id), zap.Int("orphaned_requests", orphans))
	return &dto.DeleteEquipmentResponseDTO{OrphanedRequests: orphans}, nil
}
