package payments

import "math"

// BillableUnits converts a requested booking length into checkout line-item
// quantity. Partial units round up and every booking is charged at least one
// unit, so short bookings are never free and long ones never undercharged.
func BillableUnits(requestedLength, unitLength int) int64 {
	if unitLength <= 0 {
		return 1
	}
	quantity := int64(math.Ceil(float64(requestedLength) / float64(unitLength)))
	if quantity < 1 {
		return 1
	}
	return quantity
}
