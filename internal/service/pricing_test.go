package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"camrental-backend/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func TestPricingService_RentalDays(t *testing.T) {
	svc := NewPricingService(new(MockTierRepo))

	t.Run("InclusiveCount", func(t *testing.T) {
		days, err := svc.RentalDays(day(2024, 1, 1), day(2024, 1, 4))
		assert.NoError(t, err)
		assert.Equal(t, 4, days)
	})

	t.Run("SingleDay", func(t *testing.T) {
		days, err := svc.RentalDays(day(2024, 1, 1), day(2024, 1, 1))
		assert.NoError(t, err)
		assert.Equal(t, 1, days)
	})

	t.Run("TimeOfDayIgnored", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
		end := time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC)
		days, err := svc.RentalDays(start, end)
		assert.NoError(t, err)
		assert.Equal(t, 2, days)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		_, err := svc.RentalDays(day(2024, 1, 4), day(2024, 1, 1))
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})
}

func TestPricingService_Quote(t *testing.T) {
	ctx := context.Background()

	// 500.00/day for 1-3 days, 400.00/day from the 4th day on.
	tiers := []domain.PricingTier{
		{ID: 1, CameraID: 7, MinDays: 1, MaxDays: intPtr(3), PricePerDayCents: 50000},
		{ID: 2, CameraID: 7, MinDays: 4, MaxDays: nil, PricePerDayCents: 40000},
	}

	t.Run("WholeRentalUsesOneTier", func(t *testing.T) {
		tierRepo := new(MockTierRepo)
		tierRepo.On("ListByCamera", ctx, int64(7)).Return(tiers, nil)
		svc := NewPricingService(tierRepo)

		// 4 days at the 4+ rate: 160000, never 3x50000 + 40000.
		quote, err := svc.Quote(ctx, 7, day(2024, 1, 1), day(2024, 1, 4))
		assert.NoError(t, err)
		assert.Equal(t, int64(160000), quote.TotalPriceCents)
		assert.Equal(t, int64(40000), quote.PricePerDayCents)
		assert.Equal(t, 4, quote.RentalDays)
	})

	t.Run("ShortRentalUsesFirstTier", func(t *testing.T) {
		tierRepo := new(MockTierRepo)
		tierRepo.On("ListByCamera", ctx, int64(7)).Return(tiers, nil)
		svc := NewPricingService(tierRepo)

		quote, err := svc.Quote(ctx, 7, day(2024, 1, 1), day(2024, 1, 2))
		assert.NoError(t, err)
		assert.Equal(t, int64(100000), quote.TotalPriceCents)
		assert.Equal(t, int64(50000), quote.PricePerDayCents)
		assert.Equal(t, 2, quote.RentalDays)
	})

	t.Run("NoTiersConfigured", func(t *testing.T) {
		tierRepo := new(MockTierRepo)
		tierRepo.On("ListByCamera", ctx, int64(9)).Return([]domain.PricingTier{}, nil)
		svc := NewPricingService(tierRepo)

		_, err := svc.Quote(ctx, 9, day(2024, 1, 1), day(2024, 1, 4))
		assert.ErrorIs(t, err, domain.ErrNoPricingTier)
	})

	t.Run("GapInTiers", func(t *testing.T) {
		tierRepo := new(MockTierRepo)
		tierRepo.On("ListByCamera", ctx, int64(9)).Return([]domain.PricingTier{
			{ID: 3, CameraID: 9, MinDays: 5, MaxDays: nil, PricePerDayCents: 30000},
		}, nil)
		svc := NewPricingService(tierRepo)

		_, err := svc.Quote(ctx, 9, day(2024, 1, 1), day(2024, 1, 2))
		assert.ErrorIs(t, err, domain.ErrNoPricingTier)
	})

	t.Run("TiersAreCached", func(t *testing.T) {
		tierRepo := new(MockTierRepo)
		tierRepo.On("ListByCamera", ctx, int64(7)).Return(tiers, nil).Once()
		svc := NewPricingService(tierRepo)

		_, err := svc.Quote(ctx, 7, day(2024, 1, 1), day(2024, 1, 4))
		assert.NoError(t, err)
		_, err = svc.Quote(ctx, 7, day(2024, 2, 1), day(2024, 2, 2))
		assert.NoError(t, err)
		tierRepo.AssertExpectations(t)
	})
}

func TestPricingService_AddTier(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{ID: 1, Role: domain.RoleAdmin}
	customer := domain.Actor{ID: 2, Role: domain.RoleCustomer}

	t.Run("AdminOnly", func(t *testing.T) {
		svc := NewPricingService(new(MockTierRepo))
		err := svc.AddTier(ctx, customer, &domain.PricingTier{CameraID: 7, MinDays: 1, PricePerDayCents: 100})
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	})

	t.Run("RejectsInvertedBracket", func(t *testing.T) {
		svc := NewPricingService(new(MockTierRepo))
		err := svc.AddTier(ctx, admin, &domain.PricingTier{CameraID: 7, MinDays: 5, MaxDays: intPtr(2), PricePerDayCents: 100})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("CreatesAndInvalidatesCache", func(t *testing.T) {
		tierRepo := new(MockTierRepo)
		tier := &domain.PricingTier{CameraID: 7, MinDays: 1, MaxDays: intPtr(3), PricePerDayCents: 50000}
		tierRepo.On("Create", ctx, tier).Return(nil)
		svc := NewPricingService(tierRepo)
		assert.NoError(t, svc.AddTier(ctx, admin, tier))
		tierRepo.AssertExpectations(t)
	})
}
