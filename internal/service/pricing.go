package service

import (
	"context"
	"fmt"
	"time"

	"camrental-backend/internal/cache"
	"camrental-backend/internal/domain"
	"camrental-backend/internal/repository"
)

const tierCacheTTL = 5 * time.Minute

type pricingService struct {
	tierRepo repository.PricingTierRepository
	tiers    *cache.TTLCache
}

func NewPricingService(tierRepo repository.PricingTierRepository) PricingService {
	return &pricingService{
		tierRepo: tierRepo,
		tiers:    cache.New(tierCacheTTL),
	}
}

// NormalizeDate truncates t to midnight UTC. Rental dates are calendar
// days; wall-clock time never participates in day counting or overlap.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RentalDays counts calendar days inclusively: start and end both
// count, so a same-day rental is 1 day.
func (s *pricingService) RentalDays(start, end time.Time) (int, error) {
	start, end = NormalizeDate(start), NormalizeDate(end)
	if end.Before(start) {
		return 0, domain.ErrInvalidDateRange
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// Quote selects the first tier (ordered by min_days) whose bracket
// contains the duration and derives the total from it.
func (s *pricingService) Quote(ctx context.Context, cameraID int64, start, end time.Time) (*domain.Quote, error) {
	days, err := s.RentalDays(start, end)
	if err != nil {
		return nil, err
	}

	tiers, err := s.tiersForCamera(ctx, cameraID)
	if err != nil {
		return nil, err
	}
	for _, t := range tiers {
		if t.Matches(days) {
			return &domain.Quote{
				TotalPriceCents:  int64(days) * t.PricePerDayCents,
				PricePerDayCents: t.PricePerDayCents,
				RentalDays:       days,
			}, nil
		}
	}
	return nil, fmt.Errorf("%w: camera %d, %d day(s)", domain.ErrNoPricingTier, cameraID, days)
}

func (s *pricingService) AddTier(ctx context.Context, actor domain.Actor, tier *domain.PricingTier) error {
	if !actor.IsAdmin() {
		return domain.ErrNotAuthorized
	}
	if tier.MinDays < 1 || tier.PricePerDayCents <= 0 {
		return domain.ErrInvalidInput
	}
	if tier.MaxDays != nil && *tier.MaxDays < tier.MinDays {
		return domain.ErrInvalidInput
	}
	if err := s.tierRepo.Create(ctx, tier); err != nil {
		return err
	}
	s.tiers.Delete(tierCacheKey(tier.CameraID))
	return nil
}

func (s *pricingService) tiersForCamera(ctx context.Context, cameraID int64) ([]domain.PricingTier, error) {
	key := tierCacheKey(cameraID)
	if v, ok := s.tiers.Get(key); ok {
		return v.([]domain.PricingTier), nil
	}
	tiers, err := s.tierRepo.ListByCamera(ctx, cameraID)
	if err != nil {
		return nil, err
	}
	s.tiers.Set(key, tiers)
	return tiers, nil
}

func tierCacheKey(cameraID int64) string {
	return fmt.Sprintf("tiers:%d", cameraID)
}
