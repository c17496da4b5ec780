package dto

import "time"

type NotificationDTO struct {
	ID        string     `json:"id"`
	ActorID   uint64     `json:"actor_id"`
	Type      string     `json:"type"`
	IsRead    bool       `json:"is_read"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
