package hr

type UpdateProfileRequest struct {
	Department string `json:"department" binding:"max=100"`
	Position   string `json:"position" binding:"max=100"`
	Phone      string `json:"phone" binding:"max=30"`
}

type HRProfileResponse struct {
	ID         string `json:"id"`
	AccountID  string `json:"account_id"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Phone      string `json:"phone,omitempty"`
	CreatedAt  string `json:"created_at"`
}
