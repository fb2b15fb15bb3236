package model

import "time"

// EventStatus 活動生命週期狀態
type EventStatus string

const (
	EventStatusOpen   EventStatus = "open"
	EventStatusClosed EventStatus = "closed"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusOpen, EventStatusClosed:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態。closed 為終態。
func (s EventStatus) CanTransitionTo(target EventStatus) bool {
	return s == EventStatusOpen && target == EventStatusClosed
}

type Event struct {
	ID          int64       `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Description string      `json:"description" db:"description"`
	Location    string      `json:"location" db:"location"`
	Date        string      `json:"date" db:"date"`
	Owner       string      `json:"owner" db:"owner"`
	Status      EventStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// EventParams 建立與更新活動時的完整欄位組
type EventParams struct {
	Name        string
	Description string
	Location    string
	Date        string
}

// UpdateEventParams 只更新非 nil 的欄位
type UpdateEventParams struct {
	Name        *string
	Description *string
	Location    *string
	Date        *string
}
