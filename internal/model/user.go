package model

import "time"

// UserRecord 身份到使用者名稱的對應；username 設定後不可變更
type UserRecord struct {
	CallerID  string    `json:"caller_id" db:"caller_id"`
	Username  string    `json:"username" db:"username"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
