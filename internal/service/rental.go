package service

import (
	"context"
	"fmt"
	"time"

	"camrental-backend/internal/domain"
	"camrental-backend/internal/logger"
	"camrental-backend/internal/metrics"
	"camrental-backend/internal/repository"
)

type rentalService struct {
	rentalRepo   repository.RentalRepository
	cameraRepo   repository.CameraRepository
	customerRepo repository.CustomerRepository
	paymentRepo  repository.PaymentRepository
	pricing      PricingService
	payments     PaymentGateway
	contracts    ContractService
	notifier     NotificationDispatcher

	now func() time.Time
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	cameraRepo repository.CameraRepository,
	customerRepo repository.CustomerRepository,
	paymentRepo repository.PaymentRepository,
	pricing PricingService,
	payments PaymentGateway,
	contracts ContractService,
	notifier NotificationDispatcher,
) RentalService {
	return &rentalService{
		rentalRepo:   rentalRepo,
		cameraRepo:   cameraRepo,
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
		pricing:      pricing,
		payments:     payments,
		contracts:    contracts,
		notifier:     notifier,
		now:          time.Now,
	}
}

// SubmitBooking validates the request, allocates a unit and records the
// rental as PENDING with a provisional quote. It never confirms on its
// own for self-service bookings; staff bookings proceed straight into
// the confirmation flow.
func (s *rentalService) SubmitBooking(ctx context.Context, actor domain.Actor, req SubmitBookingRequest) (*domain.Rental, error) {
	if req.BookingType == "" {
		req.BookingType = domain.BookingTypeSelfService
	}
	if req.BookingType == domain.BookingTypeStaff && !actor.IsAdmin() {
		return nil, domain.ErrNotAuthorized
	}
	if !actor.IsAdmin() && actor.ID != req.CustomerID {
		return nil, domain.ErrNotAuthorized
	}
	if (req.ModelName == "") == (req.CameraID == 0) {
		return nil, fmt.Errorf("%w: exactly one of model_name and camera_id must be set", domain.ErrInvalidInput)
	}

	start := NormalizeDate(req.StartDate)
	end := NormalizeDate(req.EndDate)
	days, err := s.pricing.RentalDays(start, end)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	rental := &domain.Rental{
		CustomerID:   req.CustomerID,
		StartDate:    start,
		EndDate:      end,
		RentalStatus: domain.RentalStatusPending,
		RentalDays:   days,
		BookingType:  req.BookingType,
	}

	if req.CameraID != 0 {
		if _, err := s.cameraRepo.GetByID(ctx, req.CameraID); err != nil {
			return nil, err
		}
		quote, err := s.pricing.Quote(ctx, req.CameraID, start, end)
		if err != nil {
			return nil, err
		}
		rental.CameraID = req.CameraID
		rental.PricePerDayCents = quote.PricePerDayCents
		rental.TotalPriceCents = quote.TotalPriceCents
		if err := s.rentalRepo.CreateOnCamera(ctx, rental, domain.BlockingStatuses); err != nil {
			return nil, err
		}
	} else {
		// The unit is only known after the atomic allocation, so the
		// quote is attached afterwards.
		if err := s.rentalRepo.CreateAllocated(ctx, req.ModelName, rental, domain.BlockingStatuses); err != nil {
			return nil, err
		}
		quote, err := s.pricing.Quote(ctx, rental.CameraID, start, end)
		if err != nil {
			return rental, fmt.Errorf("rental %d created PENDING on camera %d but quoting failed: %w", rental.ID, rental.CameraID, err)
		}
		rental.PricePerDayCents = quote.PricePerDayCents
		rental.TotalPriceCents = quote.TotalPriceCents
		if err := s.rentalRepo.Update(ctx, rental); err != nil {
			return rental, fmt.Errorf("rental %d created PENDING on camera %d but storing the quote failed: %w", rental.ID, rental.CameraID, err)
		}
	}

	metrics.BookingSubmitted(string(rental.BookingType))
	logger.InfoContext(ctx, "booking submitted",
		"rental_id", rental.ID, "camera_id", rental.CameraID,
		"customer_id", rental.CustomerID, "booking_type", rental.BookingType)

	if err := s.notifier.BookingReceived(ctx, customer, rental); err != nil {
		logger.Warn("booking received notification failed", "rental_id", rental.ID, "error", err)
	}

	if req.BookingType == domain.BookingTypeStaff {
		return s.Confirm(ctx, actor, rental.ID)
	}
	return rental, nil
}

// Confirm moves a PENDING rental to CONFIRMED. The overlap check runs
// twice: once up front to surface the competitor set, and once inside
// the guarded UPDATE so a competitor confirmed in between cannot slip
// through. The quote is recomputed from the tiers in force and frozen
// in the same statement.
func (s *rentalService) Confirm(ctx context.Context, actor domain.Actor, rentalID int64) (*domain.Rental, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrNotAuthorized
	}
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.RentalStatus != domain.RentalStatusPending {
		return nil, fmt.Errorf("%w: rental %d is %s", domain.ErrInvalidTransition, rentalID, rental.RentalStatus)
	}

	conflicts, err := s.rentalRepo.FindOverlapping(ctx, rental.CameraID, rental.StartDate, rental.EndDate, domain.ConflictStatuses, rental.ID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		metrics.ConflictDetected()
		return nil, &domain.ConflictError{RentalID: rental.ID, CameraID: rental.CameraID, Conflicts: conflicts}
	}

	quote, err := s.pricing.Quote(ctx, rental.CameraID, rental.StartDate, rental.EndDate)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.rentalRepo.ConfirmIfNoOverlap(ctx, rental.ID, *quote, domain.BlockingStatuses)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		// Lost the race to a competitor confirmed after our check.
		metrics.ConfirmationOutcome("guard_failed")
		conflicts, err := s.rentalRepo.FindOverlapping(ctx, rental.CameraID, rental.StartDate, rental.EndDate, domain.ConflictStatuses, rental.ID)
		if err != nil {
			return nil, err
		}
		metrics.ConflictDetected()
		return nil, &domain.ConflictError{RentalID: rental.ID, CameraID: rental.CameraID, Conflicts: conflicts}
	}
	metrics.ConfirmationOutcome("confirmed")

	return s.finishConfirmation(ctx, rental.ID)
}

// finishConfirmation runs the post-confirm side effects shared by every
// path that flips a rental to CONFIRMED: payment capture, payment
// record, notification.
func (s *rentalService) finishConfirmation(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	reference, err := s.payments.CreatePayment(ctx, rental)
	if err != nil {
		return rental, fmt.Errorf("rental %d confirmed but payment creation failed: %w", rental.ID, err)
	}
	record := &domain.PaymentRecord{
		RentalID:    rental.ID,
		Reference:   reference,
		AmountCents: rental.TotalPriceCents,
	}
	if err := s.paymentRepo.Create(ctx, record); err != nil {
		return rental, fmt.Errorf("rental %d confirmed but payment record creation failed: %w", rental.ID, err)
	}

	logger.InfoContext(ctx, "booking confirmed",
		"rental_id", rental.ID, "camera_id", rental.CameraID,
		"total_price_cents", rental.TotalPriceCents, "payment_reference", reference)

	if customer, err := s.customerRepo.GetByID(ctx, rental.CustomerID); err == nil {
		if err := s.notifier.BookingConfirmed(ctx, customer, rental); err != nil {
			logger.Warn("booking confirmed notification failed", "rental_id", rental.ID, "error", err)
		}
	}
	return rental, nil
}

// ResolveConflict applies an admin's chosen strategy to a rental whose
// confirmation surfaced competitors.
func (s *rentalService) ResolveConflict(ctx context.Context, actor domain.Actor, rentalID int64, strategy domain.ResolutionStrategy, params ResolveParams) (*domain.Rental, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrNotAuthorized
	}
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.RentalStatus != domain.RentalStatusPending {
		return nil, fmt.Errorf("%w: rental %d is %s", domain.ErrInvalidTransition, rentalID, rental.RentalStatus)
	}

	switch strategy {
	case domain.ResolveConfirmAnyway:
		return s.confirmAnyway(ctx, rental)
	case domain.ResolveTransferUnit:
		return s.transferAndConfirm(ctx, rental)
	case domain.ResolveRejectConflicting:
		return s.rejectConflicting(ctx, actor, rental, params)
	default:
		return nil, fmt.Errorf("%w: unknown resolution strategy %q", domain.ErrInvalidInput, strategy)
	}
}

func (s *rentalService) confirmAnyway(ctx context.Context, rental *domain.Rental) (*domain.Rental, error) {
	quote, err := s.pricing.Quote(ctx, rental.CameraID, rental.StartDate, rental.EndDate)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.rentalRepo.ConfirmUnchecked(ctx, rental.ID, *quote)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, fmt.Errorf("%w: rental %d is no longer PENDING", domain.ErrInvalidTransition, rental.ID)
	}
	metrics.ConfirmationOutcome("confirmed_anyway")
	logger.InfoContext(ctx, "conflict resolved by confirming anyway", "rental_id", rental.ID, "camera_id", rental.CameraID)
	return s.finishConfirmation(ctx, rental.ID)
}

func (s *rentalService) transferAndConfirm(ctx context.Context, rental *domain.Rental) (*domain.Rental, error) {
	camera, err := s.cameraRepo.GetByID(ctx, rental.CameraID)
	if err != nil {
		return nil, err
	}
	newCameraID, err := s.rentalRepo.TransferToAvailableUnit(ctx, rental.ID, camera.ModelName, rental.StartDate, rental.EndDate, rental.CameraID, domain.BlockingStatuses)
	if err != nil {
		metrics.TransferOutcome("failed")
		return nil, err
	}
	metrics.TransferOutcome("transferred")
	logger.InfoContext(ctx, "conflict resolved by transferring unit",
		"rental_id", rental.ID, "old_camera_id", rental.CameraID, "new_camera_id", newCameraID)

	quote, err := s.pricing.Quote(ctx, newCameraID, rental.StartDate, rental.EndDate)
	if err != nil {
		return nil, fmt.Errorf("transfer to camera %d succeeded but quoting failed, rental %d left PENDING: %w", newCameraID, rental.ID, err)
	}
	confirmed, err := s.rentalRepo.ConfirmIfNoOverlap(ctx, rental.ID, *quote, domain.BlockingStatuses)
	if err != nil {
		return nil, fmt.Errorf("transfer to camera %d succeeded but confirmation failed, rental %d left PENDING: %w", newCameraID, rental.ID, err)
	}
	if !confirmed {
		return nil, fmt.Errorf("transfer to camera %d succeeded but confirmation guard failed, rental %d left PENDING on camera %d", newCameraID, rental.ID, newCameraID)
	}
	metrics.ConfirmationOutcome("confirmed")
	return s.finishConfirmation(ctx, rental.ID)
}

func (s *rentalService) rejectConflicting(ctx context.Context, actor domain.Actor, rental *domain.Rental, params ResolveParams) (*domain.Rental, error) {
	if len(params.RejectRentalIDs) == 0 {
		return nil, fmt.Errorf("%w: REJECT_CONFLICTING requires rental ids to reject", domain.ErrInvalidInput)
	}
	reason := params.Reason
	if reason == "" {
		reason = "rejected in favor of a competing booking"
	}
	for _, id := range params.RejectRentalIDs {
		if id == rental.ID {
			// The admin named the rental being resolved: reject it and stop.
			return s.Reject(ctx, actor, id, reason)
		}
		if _, err := s.Reject(ctx, actor, id, reason); err != nil {
			return nil, fmt.Errorf("rejecting competing rental %d: %w", id, err)
		}
	}
	return s.Confirm(ctx, actor, rental.ID)
}

// RedistributeModel sweeps the model's pending rentals first come,
// first served: each one is moved to a free unit if its current one no
// longer fits, then confirmed on whichever unit it landed on. Earlier
// confirmations block later placements, so order decides who wins a
// contested unit. Failures are reported per item, never aborting the
// batch.
func (s *rentalService) RedistributeModel(ctx context.Context, actor domain.Actor, modelName string) (*domain.RedistributionReport, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrNotAuthorized
	}
	pending, err := s.rentalRepo.ListPendingByModel(ctx, modelName)
	if err != nil {
		return nil, err
	}

	report := &domain.RedistributionReport{ModelName: modelName}
	for i := range pending {
		r := &pending[i]
		item := domain.RedistributionItem{RentalID: r.ID, OldCameraID: r.CameraID}

		available, err := s.rentalRepo.IsCameraAvailable(ctx, r.CameraID, r.StartDate, r.EndDate, domain.BlockingStatuses)
		if err != nil {
			item.Error = err.Error()
			report.Failed++
			report.Items = append(report.Items, item)
			continue
		}
		placedCameraID := r.CameraID
		if !available {
			newCameraID, err := s.rentalRepo.TransferToAvailableUnit(ctx, r.ID, modelName, r.StartDate, r.EndDate, r.CameraID, domain.BlockingStatuses)
			if err != nil {
				metrics.TransferOutcome("failed")
				item.Error = err.Error()
				report.Failed++
				report.Items = append(report.Items, item)
				continue
			}
			metrics.TransferOutcome("transferred")
			item.Transferred = true
			placedCameraID = newCameraID
		}
		item.NewCameraID = placedCameraID

		quote, err := s.pricing.Quote(ctx, placedCameraID, r.StartDate, r.EndDate)
		if err != nil {
			item.Error = fmt.Sprintf("quoting failed, rental %d left PENDING on camera %d: %v", r.ID, placedCameraID, err)
			report.Failed++
			report.Items = append(report.Items, item)
			continue
		}
		confirmed, err := s.rentalRepo.ConfirmIfNoOverlap(ctx, r.ID, *quote, domain.BlockingStatuses)
		if err != nil {
			item.Error = fmt.Sprintf("confirmation failed, rental %d left PENDING on camera %d: %v", r.ID, placedCameraID, err)
			report.Failed++
			report.Items = append(report.Items, item)
			continue
		}
		if !confirmed {
			metrics.ConfirmationOutcome("guard_failed")
			item.Error = fmt.Sprintf("confirmation guard failed, rental %d left PENDING on camera %d", r.ID, placedCameraID)
			report.Failed++
			report.Items = append(report.Items, item)
			continue
		}
		metrics.ConfirmationOutcome("confirmed")
		item.Confirmed = true
		if _, err := s.finishConfirmation(ctx, r.ID); err != nil {
			item.Error = err.Error()
			report.Failed++
			report.Items = append(report.Items, item)
			continue
		}
		report.Succeeded++
		report.Items = append(report.Items, item)
	}

	logger.InfoContext(ctx, "model redistribution finished",
		"model_name", modelName, "succeeded", report.Succeeded, "failed", report.Failed)
	return report, nil
}

// Reject declines a PENDING rental with a stated reason.
func (s *rentalService) Reject(ctx context.Context, actor domain.Actor, rentalID int64, reason string) (*domain.Rental, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrNotAuthorized
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", domain.ErrInvalidInput)
	}
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.RentalStatus != domain.RentalStatusPending {
		return nil, fmt.Errorf("%w: rental %d is %s", domain.ErrInvalidTransition, rentalID, rental.RentalStatus)
	}
	rental.RentalStatus = domain.RentalStatusRejected
	rental.RejectionReason = &reason
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "booking rejected", "rental_id", rental.ID, "reason", reason)

	if err := s.contracts.VoidContract(ctx, rental); err != nil {
		logger.Warn("voiding contract failed", "rental_id", rental.ID, "error", err)
	}
	if customer, err := s.customerRepo.GetByID(ctx, rental.CustomerID); err == nil {
		if err := s.notifier.BookingRejected(ctx, customer, rental); err != nil {
			logger.Warn("booking rejected notification failed", "rental_id", rental.ID, "error", err)
		}
	}
	return rental, nil
}

// Cancel withdraws a rental. Customers may only cancel their own
// bookings and only while the unit has not left the warehouse; staff
// may cancel any PENDING or CONFIRMED rental.
func (s *rentalService) Cancel(ctx context.Context, actor domain.Actor, rentalID int64, reason string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessRental(rental) {
		return nil, domain.ErrNotAuthorized
	}

	if actor.IsAdmin() {
		if !rental.AdminCanCancel() {
			return nil, fmt.Errorf("%w: rental %d is %s", domain.ErrInvalidTransition, rentalID, rental.RentalStatus)
		}
	} else {
		if !rental.CustomerCanCancel() {
			if rental.RentalStatus == domain.RentalStatusPending || rental.RentalStatus == domain.RentalStatusConfirmed {
				return nil, domain.ErrCancellationNotAllowed
			}
			return nil, fmt.Errorf("%w: rental %d is %s", domain.ErrInvalidTransition, rentalID, rental.RentalStatus)
		}
	}

	rental.RentalStatus = domain.RentalStatusCancelled
	rental.ShippingStatus = nil
	if reason != "" {
		rental.CancellationReason = &reason
	}
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "booking cancelled", "rental_id", rental.ID, "by_admin", actor.IsAdmin())

	if customer, err := s.customerRepo.GetByID(ctx, rental.CustomerID); err == nil {
		if err := s.notifier.BookingCancelled(ctx, customer, rental); err != nil {
			logger.Warn("booking cancelled notification failed", "rental_id", rental.ID, "error", err)
		}
	}
	return rental, nil
}

// AdvanceShipping applies one shipping event. The commercial status is
// only touched at the single coupling point: a delivery confirmed on or
// after the start date activates a CONFIRMED rental.
func (s *rentalService) AdvanceShipping(ctx context.Context, actor domain.Actor, rentalID int64, event domain.ShippingEvent) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessRental(rental) {
		return nil, domain.ErrNotAuthorized
	}
	if rental.RentalStatus != domain.RentalStatusConfirmed && rental.RentalStatus != domain.RentalStatusActive {
		return nil, fmt.Errorf("%w: shipping cannot advance while rental %d is %s", domain.ErrInvalidTransition, rentalID, rental.RentalStatus)
	}

	next, adminOnly, ok := domain.NextShippingStatus(rental.ShippingStatus, event)
	if !ok {
		return nil, fmt.Errorf("%w: shipping event %s not legal from current state", domain.ErrInvalidTransition, event)
	}
	if adminOnly && !actor.IsAdmin() {
		return nil, domain.ErrNotAuthorized
	}

	rental.ShippingStatus = &next
	if event == domain.ShippingEventConfirmDelivery &&
		rental.RentalStatus == domain.RentalStatusConfirmed &&
		!NormalizeDate(s.now().UTC()).Before(rental.StartDate) {
		rental.RentalStatus = domain.RentalStatusActive
	}
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "shipping advanced",
		"rental_id", rental.ID, "event", event,
		"shipping_status", next, "rental_status", rental.RentalStatus)

	if customer, err := s.customerRepo.GetByID(ctx, rental.CustomerID); err == nil {
		if err := s.notifier.ShippingAdvanced(ctx, customer, rental); err != nil {
			logger.Warn("shipping advanced notification failed", "rental_id", rental.ID, "error", err)
		}
	}
	return rental, nil
}

// Complete closes an ACTIVE rental once its unit is back.
func (s *rentalService) Complete(ctx context.Context, actor domain.Actor, rentalID int64) (*domain.Rental, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrNotAuthorized
	}
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.RentalStatus != domain.RentalStatusActive {
		return nil, fmt.Errorf("%w: rental %d is %s", domain.ErrInvalidTransition, rentalID, rental.RentalStatus)
	}
	if rental.ShippingStatus == nil || *rental.ShippingStatus != domain.ShippingStatusReturned {
		return nil, fmt.Errorf("%w: unit must be RETURNED before completion", domain.ErrInvalidTransition)
	}

	rental.RentalStatus = domain.RentalStatusCompleted
	rental.ShippingStatus = nil
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "rental completed", "rental_id", rental.ID, "camera_id", rental.CameraID)
	return rental, nil
}

// ForceDelete removes the rental and its payment records entirely.
// Administrative escape hatch for bad data, not part of the lifecycle.
func (s *rentalService) ForceDelete(ctx context.Context, actor domain.Actor, rentalID int64) error {
	if !actor.IsAdmin() {
		return domain.ErrNotAuthorized
	}
	if err := s.rentalRepo.DeleteCascade(ctx, rentalID); err != nil {
		return err
	}
	logger.InfoContext(ctx, "rental force-deleted", "rental_id", rentalID)
	return nil
}

func (s *rentalService) GetRental(ctx context.Context, actor domain.Actor, rentalID int64) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessRental(rental) {
		return nil, domain.ErrNotAuthorized
	}
	return rental, nil
}

func (s *rentalService) ListRentals(ctx context.Context, actor domain.Actor, filter repository.RentalFilter) ([]domain.Rental, error) {
	if !actor.IsAdmin() {
		// Customers only ever see their own rentals.
		id := actor.ID
		filter.CustomerID = &id
	}
	return s.rentalRepo.List(ctx, filter)
}

// CameraSchedule lists everything going on for a unit in the window,
// including pending requests. Read-only calendar view.
func (s *rentalService) CameraSchedule(ctx context.Context, cameraID int64, from, to time.Time) ([]domain.Rental, error) {
	from = NormalizeDate(from)
	to = NormalizeDate(to)
	if to.Before(from) {
		return nil, domain.ErrInvalidDateRange
	}
	if _, err := s.cameraRepo.GetByID(ctx, cameraID); err != nil {
		return nil, err
	}
	return s.rentalRepo.FindOverlapping(ctx, cameraID, from, to, domain.CalendarStatuses, 0)
}
