package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/sheetdb"
	"repair-system/internal/store"
	apperrors "repair-system/pkg/errors"
)

type WorkshopServiceInterface interface {
	ListWorkshops(ctx context.Context) ([]entities.Workshop, error)
	FindWorkshop(ctx context.Context, id string) (*entities.Workshop, error)
	CreateWorkshop(ctx context.Context, payload dto.CreateWorkshopDTO) (*entities.Workshop, error)
	UpdateWorkshop(ctx context.Context, id string, payload dto.UpdateWorkshopDTO) (*entities.Workshop, error)
	DeleteWorkshop(ctx context.Context, id string) error
}

type WorkshopService struct {
	store  *store.Store
	logger *zap.Logger
}

func NewWorkshopService(st *store.Store, logger *zap.Logger) WorkshopServiceInterface {
	return &WorkshopService{store: st, logger: logger}
}

func (s *WorkshopService) ListWorkshops(ctx context.Context) ([]entities.Workshop, error) {
	return s.store.Snapshot().Workshops, nil
}

func (s *WorkshopService) FindWorkshop(ctx context.Context, id string) (*entities.Workshop, error) {
	for _, w := range s.store.Snapshot().Workshops {
		if w.ID == id {
			ws := w
			return &ws, nil
		}
	}
	return nil, apperrors.NewNotFoundError("workshop not found")
}

func (s *WorkshopService) CreateWorkshop(ctx context.Context, payload dto.CreateWorkshopDTO) (*entities.Workshop, error) {
	workshop := entities.Workshop{
		ID:       uuid.NewString(),
		SubName:  payload.SubName,
		Foreman:  payload.Foreman,
		Mechanic: payload.Mechanic,
	}

	if err := s.store.Create(ctx, sheetdb.SheetWorkshops, workshop); err != nil {
		s.logger.Error("failed to create workshop", zap.Error(err))
		return nil, apperrors.NewRemoteError("failed to save workshop", err)
	}

	s.logger.Info("workshop created", zap.String("id", workshop.ID), zap.String("name", workshop.SubName))
	return &workshop, nil
}

func (s *WorkshopService) UpdateWorkshop(ctx context.Context, id string, payload dto.UpdateWorkshopDTO) (*entities.Workshop, error) {
	current, err := s.FindWorkshop(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.SubName != nil {
		if *payload.SubName == "" {
			return nil, apperrors.NewBadRequestError("workshop name must not be empty", nil)
		}
		current.SubName = *payload.SubName
	}
	if payload.Foreman != nil {
		if *payload.Foreman == "" {
			return nil, apperrors.NewBadRequestError("foreman must not be empty", nil)
		}
		current.Foreman = *payload.Foreman
	}
	if payload.Mechanic != nil {
		current.Mechanic = *payload.Mechanic
	}

	if err := s.store.Update(ctx, sheetdb.SheetWorkshops, *current); err != nil {
		s.logger.Error("failed to update workshop", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewRemoteError("failed to save workshop", err)
	}
	return current, nil
}

// DeleteWorkshop refuses while any repair request fault still references the
// workshop; the check runs against the snapshot so a rejected delete never
// touches the remote store.
func (s *WorkshopService) DeleteWorkshop(ctx context.Context, id string) error {
	if _, err := s.FindWorkshop(ctx, id); err != nil {
		return err
	}

	for _, r := range s.store.Snapshot().RepairRequests {
		for _, f := range r.Faults {
			if f.WorkshopID == id {
				return apperrors.NewConflictError("workshop is referenced by repair request " + r.ID + " and cannot be deleted")
			}
		}
	}

	if err := s.store.Delete(ctx, sheetdb.SheetWorkshops, id); err != nil {
		s.logger.Error("failed to delete workshop", zap.String("id", id), zap.Error(err))
		return apperrors.NewRemoteError("failed to delete workshop", err)
	}

	s.logger.Info("workshop deleted", zap.String("id", id))
	return nil
}
