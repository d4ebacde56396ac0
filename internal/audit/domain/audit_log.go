package domain

import "time"

// AuditLog represents one recorded security-relevant event.
type AuditLog struct {
	ID        string
	ActorID   string
	Action    string
	Resource  string
	IP        string
	Detail    string
	CreatedAt time.Time
}
