package events

import "time"

const LeaveLifecycleTopic = "workforce.leave.lifecycle.v1"

const LeaveReviewedEventType = "leave.reviewed"

type LeaveReviewedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	ApproverID string    `json:"approver_id"`
	Comment    string    `json:"comment,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
