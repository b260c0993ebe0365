package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"camrental-backend/internal/domain"
	"camrental-backend/internal/repository"
)

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) CreateAllocated(ctx context.Context, modelName string, r *domain.Rental, blocking []domain.RentalStatus) error {
	args := m.Called(ctx, modelName, r, blocking)
	return args.Error(0)
}
func (m *MockRentalRepo) CreateOnCamera(ctx context.Context, r *domain.Rental, blocking []domain.RentalStatus) error {
	args := m.Called(ctx, r, blocking)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, r *domain.Rental) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRentalRepo) List(ctx context.Context, filter repository.RentalFilter) ([]domain.Rental, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) FindOverlapping(ctx context.Context, cameraID int64, start, end time.Time, statuses []domain.RentalStatus, excludeID int64) ([]domain.Rental, error) {
	args := m.Called(ctx, cameraID, start, end, statuses, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) IsCameraAvailable(ctx context.Context, cameraID int64, start, end time.Time, blocking []domain.RentalStatus) (bool, error) {
	args := m.Called(ctx, cameraID, start, end, blocking)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalRepo) ConfirmIfNoOverlap(ctx context.Context, rentalID int64, quote domain.Quote, blocking []domain.RentalStatus) (bool, error) {
	args := m.Called(ctx, rentalID, quote, blocking)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalRepo) ConfirmUnchecked(ctx context.Context, rentalID int64, quote domain.Quote) (bool, error) {
	args := m.Called(ctx, rentalID, quote)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalRepo) TransferToAvailableUnit(ctx context.Context, rentalID int64, modelName string, start, end time.Time, excludeCameraID int64, blocking []domain.RentalStatus) (int64, error) {
	args := m.Called(ctx, rentalID, modelName, start, end, excludeCameraID, blocking)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRentalRepo) ListPendingByModel(ctx context.Context, modelName string) ([]domain.Rental, error) {
	args := m.Called(ctx, modelName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ScheduleOverdueReturns(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) DeleteCascade(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCameraRepo
type MockCameraRepo struct {
	mock.Mock
}

func (m *MockCameraRepo) Create(ctx context.Context, c *domain.Camera) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCameraRepo) GetByID(ctx context.Context, id int64) (*domain.Camera, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Camera), args.Error(1)
}
func (m *MockCameraRepo) Update(ctx context.Context, c *domain.Camera) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCameraRepo) ListByModel(ctx context.Context, modelName string) ([]domain.Camera, error) {
	args := m.Called(ctx, modelName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Camera), args.Error(1)
}

// MockTierRepo
type MockTierRepo struct {
	mock.Mock
}

func (m *MockTierRepo) Create(ctx context.Context, t *domain.PricingTier) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTierRepo) ListByCamera(ctx context.Context, cameraID int64) ([]domain.PricingTier, error) {
	args := m.Called(ctx, cameraID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PricingTier), args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.PaymentRecord) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByRental(ctx context.Context, rentalID int64) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentRecord), args.Error(1)
}

// MockPaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePayment(ctx context.Context, rental *domain.Rental) (string, error) {
	args := m.Called(ctx, rental)
	return args.String(0), args.Error(1)
}

// MockContractService
type MockContractService struct {
	mock.Mock
}

func (m *MockContractService) VoidContract(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingReceived(ctx context.Context, customer *domain.Customer, rental *domain.Rental) error {
	args := m.Called(ctx, customer, rental)
	return args.Error(0)
}
func (m *MockNotifier) BookingConfirmed(ctx context.Context, customer *domain.Customer, rental *domain.Rental) error {
	args := m.Called(ctx, customer, rental)
	return args.Error(0)
}
func (m *MockNotifier) BookingRejected(ctx context.Context, customer *domain.Customer, rental *domain.Rental) error {
	args := m.Called(ctx, customer, rental)
	return args.Error(0)
}
func (m *MockNotifier) BookingCancelled(ctx context.Context, customer *domain.Customer, rental *domain.Rental) error {
	args := m.Called(ctx, customer, rental)
	return args.Error(0)
}
func (m *MockNotifier) ShippingAdvanced(ctx context.Context, customer *domain.Customer, rental *domain.Rental) error {
	args := m.Called(ctx, customer, rental)
	return args.Error(0)
}
