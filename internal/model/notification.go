package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType 狀態變更通知類型
type NotificationType string

const (
	NotificationNewEvent      NotificationType = "new_event"
	NotificationEventUpdated  NotificationType = "event_updated"
	NotificationEventClosed   NotificationType = "event_closed"
	NotificationUsernameSet   NotificationType = "username_set"
	NotificationConfigChanged NotificationType = "config_changed"
)

// EventField 更新通知中標示的欄位名
type EventField string

const (
	EventFieldName        EventField = "Name"
	EventFieldDescription EventField = "Description"
	EventFieldLocation    EventField = "Location"
	EventFieldDate        EventField = "Date"
)

// Notification 成功的狀態變更後發出的附加紀錄，只增不改
type Notification struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	Type        NotificationType `json:"type" db:"type"`
	Caller      string           `json:"caller,omitempty" db:"caller"`
	EventID     int64            `json:"event_id,omitempty" db:"event_id"`
	Name        string           `json:"name,omitempty" db:"name"`
	Description string           `json:"description,omitempty" db:"description"`
	Field       EventField       `json:"field,omitempty" db:"field"`
	Username    string           `json:"username,omitempty" db:"username"`
	Setting     string           `json:"setting,omitempty" db:"setting"`
	Value       string           `json:"value,omitempty" db:"value"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

func NewEventNotification(caller string, eventID int64, name, description string) *Notification {
	return newNotification(&Notification{
		Type:        NotificationNewEvent,
		Caller:      caller,
		EventID:     eventID,
		Name:        name,
		Description: description,
	})
}

func EventUpdatedNotification(caller string, eventID int64, field EventField) *Notification {
	return newNotification(&Notification{
		Type:    NotificationEventUpdated,
		Caller:  caller,
		EventID: eventID,
		Field:   field,
	})
}

func EventClosedNotification(caller string, eventID int64, name string) *Notification {
	return newNotification(&Notification{
		Type:    NotificationEventClosed,
		Caller:  caller,
		EventID: eventID,
		Name:    name,
	})
}

func UsernameSetNotification(caller, username string) *Notification {
	return newNotification(&Notification{
		Type:     NotificationUsernameSet,
		Caller:   caller,
		Username: username,
	})
}

func ConfigChangedNotification(caller, setting, value string) *Notification {
	return newNotification(&Notification{
		Type:    NotificationConfigChanged,
		Caller:  caller,
		Setting: setting,
		Value:   value,
	})
}

func newNotification(n *Notification) *Notification {
	n.ID = uuid.New()
	n.CreatedAt = time.Now().UTC()
	return n
}
