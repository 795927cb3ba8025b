package model

import (
	"time"

	"gorm.io/gorm"
)

type AttendanceRecord struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"uniqueIndex:idx_user_day"`
	UserName string `json:"user_name"` // denormalized for listings

	CapturedAt time.Time `json:"captured_at"`                         // absolute instant, stored UTC
	Timezone   string    `json:"timezone"`                            // IANA zone id of the capture
	Day        string    `json:"day" gorm:"uniqueIndex:idx_user_day"` // YYYY-MM-DD, one record per user per day

	LocationLabel string   `json:"location_label"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Accuracy      *float64 `json:"accuracy"`
	Source        string   `json:"source"` // gps / network

	PhotoURL      string `json:"photo_url"`
	PhotoPublicID string `json:"photo_public_id"`

	Status      string `json:"status"` // on_time / late, computed at creation
	FlagComment string `json:"flag_comment"`
}
