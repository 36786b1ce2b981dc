package reservation

// FindConflict returns the first reservation in existing that blocks the
// candidate slot, scanning in the order given, or nil when the slot is free.
func FindConflict(existing []*Reservation, candidate TimeSlot) *Reservation {
	for _, r := range existing {
		if r.Blocks(candidate) {
			return r
		}
	}
	return nil
}

func HasConflict(existing []*Reservation, candidate TimeSlot) bool {
	return FindConflict(existing, candidate) != nil
}
