package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint  `gorm:"not null;index" json:"customer_id"`
	Customer   *User `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	BarberID uint    `gorm:"not null" json:"barber_id"`
	Barber   *Barber `gorm:"foreignKey:BarberID" json:"barber,omitempty"`

	ServiceID uint     `gorm:"not null" json:"service_id"`
	Service   *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`

	AppointmentTime time.Time `gorm:"not null" json:"appointment_time"`

	Status string `gorm:"size:20;not null;default:'scheduled'" json:"status"`

	CanceledAt  *time.Time `json:"canceled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
