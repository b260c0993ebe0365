package service

import (
	"context"
	"time"

	"camrental-backend/internal/domain"
	"camrental-backend/internal/repository"
)

type availabilityService struct {
	rentalRepo repository.RentalRepository
	cameraRepo repository.CameraRepository
}

func NewAvailabilityService(rentalRepo repository.RentalRepository, cameraRepo repository.CameraRepository) AvailabilityService {
	return &availabilityService{rentalRepo: rentalRepo, cameraRepo: cameraRepo}
}

// IsAvailable answers with one store round trip. Allocation decisions
// never go through this read path; they use the repository's atomic
// allocate-and-reserve statement so the answer cannot go stale between
// check and use.
func (s *availabilityService) IsAvailable(ctx context.Context, cameraID int64, start, end time.Time) (bool, error) {
	start, end = NormalizeDate(start), NormalizeDate(end)
	if end.Before(start) {
		return false, domain.ErrInvalidDateRange
	}
	if _, err := s.cameraRepo.GetByID(ctx, cameraID); err != nil {
		return false, err
	}
	return s.rentalRepo.IsCameraAvailable(ctx, cameraID, start, end, domain.BlockingStatuses)
}
