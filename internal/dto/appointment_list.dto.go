package dto

import "time"

type AppointmentListDTO struct {
	ID          uint       `json:"id"`
	StartTime   time.Time  `json:"start_time"`
	ClientName  string     `json:"client_name"`
	ClientEmail string     `json:"client_email"`
	ClientPhone string     `json:"client_phone"`
	Cancelled   bool       `json:"cancelled"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}
