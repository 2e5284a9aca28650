package dto

import "time"

type AuditLogResponse struct {
	ID        int64                  `json:"id"`
	UserID    string                 `json:"user_id,omitempty"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
