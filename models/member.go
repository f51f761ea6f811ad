package models

import (
	"database/sql"
	"time"
)

type Member struct {
	ID        uint64         `json:"id" gorm:"primaryKey"`
	UID       string         `json:"uid"`
	Email     string         `json:"email"`
	Role      string         `json:"role"`
	State     string         `json:"state"`
	Username  sql.NullString `json:"username"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
