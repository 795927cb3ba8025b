package model

import "gorm.io/gorm"

type Setting struct {
	gorm.Model
	Key   string `json:"key" gorm:"column:key;unique;not null"`
	Value string `json:"value"`
}

const SettingCutoffTime = "cutoff_time" // HH:mm, 24-hour
