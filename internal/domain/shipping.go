package domain

type ShippingStatus string

const (
	ShippingStatusReadyToShip      ShippingStatus = "READY_TO_SHIP"
	ShippingStatusInTransitToUser  ShippingStatus = "IN_TRANSIT_TO_USER"
	ShippingStatusDelivered        ShippingStatus = "DELIVERED"
	ShippingStatusReturnScheduled  ShippingStatus = "RETURN_SCHEDULED"
	ShippingStatusInTransitToOwner ShippingStatus = "IN_TRANSIT_TO_OWNER"
	ShippingStatusReturned         ShippingStatus = "RETURNED"
)

// ShippingEvent drives the shipping state machine. The chain is
// strictly linear; each event is legal from exactly one prior state.
type ShippingEvent string

const (
	ShippingEventMarkReady       ShippingEvent = "MARK_READY"
	ShippingEventShip            ShippingEvent = "SHIP"
	ShippingEventConfirmDelivery ShippingEvent = "CONFIRM_DELIVERY"
	ShippingEventScheduleReturn  ShippingEvent = "SCHEDULE_RETURN"
	ShippingEventShipBack        ShippingEvent = "SHIP_BACK"
	ShippingEventConfirmReturn   ShippingEvent = "CONFIRM_RETURN"
)

type shippingStep struct {
	from *ShippingStatus // nil means shipping has not started
	to   ShippingStatus
	// adminOnly events may only be issued by staff; the rest are
	// customer confirmations of physical custody changes.
	adminOnly bool
}

func shippingPtr(s ShippingStatus) *ShippingStatus { return &s }

var shippingSteps = map[ShippingEvent]shippingStep{
	ShippingEventMarkReady:       {from: nil, to: ShippingStatusReadyToShip, adminOnly: true},
	ShippingEventShip:            {from: shippingPtr(ShippingStatusReadyToShip), to: ShippingStatusInTransitToUser, adminOnly: true},
	ShippingEventConfirmDelivery: {from: shippingPtr(ShippingStatusInTransitToUser), to: ShippingStatusDelivered},
	ShippingEventScheduleReturn:  {from: shippingPtr(ShippingStatusDelivered), to: ShippingStatusReturnScheduled},
	ShippingEventShipBack:        {from: shippingPtr(ShippingStatusReturnScheduled), to: ShippingStatusInTransitToOwner},
	ShippingEventConfirmReturn:   {from: shippingPtr(ShippingStatusInTransitToOwner), to: ShippingStatusReturned, adminOnly: true},
}

// NextShippingStatus resolves an event against the current shipping
// state. It returns the resulting status, whether the event is
// restricted to staff, and whether the event is legal from current.
// SCHEDULE_RETURN is idempotent: re-issuing it on a rental already in
// RETURN_SCHEDULED is legal and a no-op, so the automatic return sweep
// is safe to run repeatedly.
func NextShippingStatus(current *ShippingStatus, event ShippingEvent) (ShippingStatus, bool, bool) {
	step, ok := shippingSteps[event]
	if !ok {
		return "", false, false
	}
	if event == ShippingEventScheduleReturn && current != nil && *current == ShippingStatusReturnScheduled {
		return ShippingStatusReturnScheduled, step.adminOnly, true
	}
	if step.from == nil {
		if current != nil {
			return "", step.adminOnly, false
		}
		return step.to, step.adminOnly, true
	}
	if current == nil || *current != *step.from {
		return "", step.adminOnly, false
	}
	return step.to, step.adminOnly, true
}

// ShippingPastReadyToShip reports whether the unit is already in
// transit, delivered, or on its way back.
func ShippingPastReadyToShip(s *ShippingStatus) bool {
	if s == nil {
		return false
	}
	return *s != ShippingStatusReadyToShip
}
