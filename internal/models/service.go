package models

import "time"

// Service belongs to a barbershop; when BranchID is set it is offered only
// at that branch.
type Service struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	BarbershopID uint    `gorm:"not null;index" json:"barbershop_id"`
	BranchID     *uint   `gorm:"index" json:"branch_id"`
	Name         string  `gorm:"size:100;not null" json:"name"`
	Duration     int     `gorm:"not null" json:"duration"`
	Price        float64 `gorm:"not null" json:"price"`
	IsActive     bool    `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
