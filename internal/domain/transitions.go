package domain

// allowedTransitions is the explicit state machine for event ingestion.
// The read side never consults this table: status resolution must tolerate
// logs recorded before validation existed, or corrupted by hand.
var allowedTransitions = map[Status]map[EventType]bool{
	StatusClockedOut: {
		EventTypeIn: true,
	},
	StatusClockedIn: {
		EventTypeOut:        true,
		EventTypeBreakStart: true,
	},
	StatusOnBreak: {
		EventTypeBreakEnd: true,
	},
}

// CanRecord reports whether an event of the given type may be appended to a
// log whose derived status is current.
func CanRecord(current Status, next EventType) bool {
	return allowedTransitions[current][next]
}
