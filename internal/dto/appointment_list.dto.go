package dto

import "time"

type AppointmentListDTO struct {
	ID              uint      `json:"id"`
	CustomerID      uint      `json:"customer_id"`
	BarberID        uint      `json:"barber_id"`
	ServiceID       uint      `json:"service_id"`
	ServiceName     string    `json:"service_name"`
	AppointmentTime time.Time `json:"appointment_time"`
	EndTime         time.Time `json:"end_time"`
	Status          string    `json:"status"`
}
