package models

import "time"

type User struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username      string    `gorm:"unique;not null"          json:"username"`
	PasswordHash  string    `gorm:"not null"                 json:"-"`
	Role          string    `gorm:"not null;default:user"    json:"role"`
	ContactNumber string    `json:"contact_number"`
	RefreshToken  *string   `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

type Position struct {
	PositionID   uint   `gorm:"primaryKey;autoIncrement;column:position_id" json:"position_id"`
	PositionCode string `gorm:"not null"       json:"position_code"`
	PositionName string `gorm:"not null"       json:"position_name"`
	UserID       uint   `gorm:"index;not null" json:"user_id"`
	User         *User  `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

// PositionRow is a positions row joined with the owning username, the
// shape the list and get endpoints return.
type PositionRow struct {
	PositionID   uint   `json:"position_id"`
	PositionCode string `json:"position_code"`
	PositionName string `json:"position_name"`
	UserID       uint   `json:"user_id"`
	UserName     string `json:"user_name"`
}
