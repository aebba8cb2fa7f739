package domain

// Record is the per-user aggregate root. Events are kept in insertion order.
type Record struct {
	Profile    UserProfile
	Assessment RiskAssessment
	Events     []ConsumptionEvent
}

// NewRecord returns a default-initialized record.
func NewRecord() *Record {
	return &Record{
		Assessment: EmptyAssessment(),
		Events:     []ConsumptionEvent{},
	}
}

// HasConsumption reports whether any event has been logged.
func (r *Record) HasConsumption() bool {
	return len(r.Events) > 0
}
