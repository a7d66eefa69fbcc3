package events

import "time"

const (
	EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"
	EmployeePromotedType   = "employee_promoted"
)

// EmployeePromotedEvent is published after a candidate promotion commits.
// It is written to the outbox inside the promotion transaction, so downstream
// consumers (payroll, access provisioning) never see a phantom promotion.
type EmployeePromotedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	CandidateID int64     `json:"candidate_id"`
	EmployeeID  int64     `json:"employee_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}
