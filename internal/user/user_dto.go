package user

// DeletionResponse reports what an account deletion removed.
type DeletionResponse struct {
	AccountID     string `json:"account_id"`
	Role          string `json:"role"`
	ProfileID     string `json:"profile_id,omitempty"`
	LeavesRemoved int64  `json:"leaves_removed"`
}
