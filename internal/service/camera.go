package service

import (
	"context"

	"camrental-backend/internal/domain"
	"camrental-backend/internal/repository"
)

type cameraService struct {
	cameraRepo repository.CameraRepository
}

func NewCameraService(cameraRepo repository.CameraRepository) CameraService {
	return &cameraService{cameraRepo: cameraRepo}
}

func (s *cameraService) AddCamera(ctx context.Context, actor domain.Actor, c *domain.Camera) error {
	if !actor.IsAdmin() {
		return domain.ErrNotAuthorized
	}
	if c.ModelName == "" || c.SerialNumber == "" {
		return domain.ErrInvalidInput
	}
	if c.Status == "" {
		c.Status = domain.CameraStatusAvailable
	}
	if c.Condition == "" {
		c.Condition = domain.CameraConditionGood
	}
	return s.cameraRepo.Create(ctx, c)
}

func (s *cameraService) GetCamera(ctx context.Context, id int64) (*domain.Camera, error) {
	return s.cameraRepo.GetByID(ctx, id)
}

func (s *cameraService) ListByModel(ctx context.Context, modelName string) ([]domain.Camera, error) {
	return s.cameraRepo.ListByModel(ctx, modelName)
}

func (s *cameraService) SetStatus(ctx context.Context, actor domain.Actor, cameraID int64, status domain.CameraStatus) error {
	if !actor.IsAdmin() {
		return domain.ErrNotAuthorized
	}
	if status != domain.CameraStatusAvailable && status != domain.CameraStatusUnavailable {
		return domain.ErrInvalidInput
	}
	c, err := s.cameraRepo.GetByID(ctx, cameraID)
	if err != nil {
		return err
	}
	c.Status = status
	return s.cameraRepo.Update(ctx, c)
}
