package attendance

import "time"

type CheckInRequest struct {
	Token string `json:"token" binding:"required"`
}

type VerifyResponse struct {
	EmployeeName string `json:"employee_name"`
	Message      string `json:"message"`
}

type StatusResponse struct {
	EmployeeID   int64      `json:"employee_id"`
	EmployeeName string     `json:"employee_name,omitempty"`
	Date         string     `json:"date"`
	Status       string     `json:"status"`
	CheckInAt    *time.Time `json:"check_in_at,omitempty"`
}

type SeedDayRequest struct {
	Date string `json:"date" binding:"required"`
}

type SeedDayResponse struct {
	Date   string `json:"date"`
	Seeded int64  `json:"seeded"`
}
