package leave

type CreateLeaveRequest struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" binding:"required,max=1000"`
	Category  string `json:"category" binding:"required,oneof=sick vacation personal other"`
}

type ReviewLeaveRequest struct {
	Status  string `json:"status" binding:"required,oneof=approved rejected"`
	Comment string `json:"comment" binding:"max=1000"`
}

type ListAllParams struct {
	Status string
	Page   int
	Limit  int
}

type EmployeeSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

type LeaveResponse struct {
	ID         string           `json:"id"`
	EmployeeID string           `json:"employee_id"`
	Employee   *EmployeeSummary `json:"employee,omitempty"`
	StartDate  string           `json:"start_date"`
	EndDate    string           `json:"end_date"`
	Days       int              `json:"days"`
	Reason     string           `json:"reason"`
	Category   string           `json:"category"`
	Status     string           `json:"status"`
	Comment    *string          `json:"comment,omitempty"`
	ApproverID *string          `json:"approver_id,omitempty"`
	ApprovedAt *string          `json:"approved_at,omitempty"`
	CreatedAt  string           `json:"created_at"`
}

type SummaryResponse struct {
	From         string           `json:"from"`
	To           string           `json:"to"`
	ApprovedDays int              `json:"approved_days"`
	Counts       map[string]int64 `json:"counts"`
}
