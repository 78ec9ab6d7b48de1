package events

import "time"

const AccountLifecycleTopic = "workforce.account.lifecycle.v1"

const (
	AccountDeletedEventType        = "account.deleted"
	AccountAvatarReplacedEventType = "account.avatar_replaced"
)

// AccountDeletedEvent is emitted after an account and everything it owned
// have been removed.
type AccountDeletedEvent struct {
	EventType     string    `json:"event_type"`
	AccountID     string    `json:"account_id"`
	Role          string    `json:"role"`
	ProfileID     string    `json:"profile_id,omitempty"`
	LeavesRemoved int64     `json:"leaves_removed"`
	AvatarHandle  string    `json:"avatar_handle,omitempty"`
	DeletedBy     string    `json:"deleted_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// AvatarReplacedEvent carries the handle of the previous image so the
// image store can drop it.
type AvatarReplacedEvent struct {
	EventType      string    `json:"event_type"`
	AccountID      string    `json:"account_id"`
	AvatarURL      string    `json:"avatar_url"`
	PreviousHandle string    `json:"previous_handle,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
