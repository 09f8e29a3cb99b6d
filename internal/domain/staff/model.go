package staff

import (
	"time"

	"github.com/google/uuid"
)

// User maps to the staff_user table. Staff accounts live in SQL rather than
// the document store: they gate access to it.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// DashboardStats are the counts shown on the staff dashboard.
type DashboardStats struct {
	TotalPatients     int `json:"total_patients"`
	TotalDoctors      int `json:"total_doctors"`
	TodayAppointments int `json:"today_appointments"`
}
