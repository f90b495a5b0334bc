package models

// Barber is bookable only while IsActive. Inactive barbers keep their
// appointment history.
type Barber struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	UserID   uint  `gorm:"not null;uniqueIndex" json:"user_id"`
	User     *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	BranchID uint  `gorm:"not null;index" json:"branch_id"`
	IsActive bool  `gorm:"not null;default:true" json:"is_active"`
}

type AvailabilityWindow struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	BarberID  uint   `gorm:"not null;index" json:"barber_id"`
	DayOfWeek int    `gorm:"not null" json:"day_of_week"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
}
