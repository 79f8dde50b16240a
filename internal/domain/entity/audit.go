package entity

import "time"

// AuditEntry registro de auditoría de una mutación (quién hizo qué y dónde).
type AuditEntry struct {
	ID          string    `json:"id"`
	ActorID     string    `json:"actorId"`
	Action      string    `json:"action"`
	EntityType  string    `json:"entityType"`
	EntityID    string    `json:"entityId"`
	FranchiseID string    `json:"franchiseId"`
	Detail      string    `json:"detail"`
	CreatedAt   time.Time `json:"createdAt"`
}
