package models

import "time"

// AuditLogEntry records one mutating HTTP request against the panel. Entries
// are written by the audit middleware for every POST, including proposals
// and review decisions; passwords are masked before the form data is stored.
type AuditLogEntry struct {
	ID        int64
	Timestamp time.Time
	UserEmail string
	Method    string
	Path      string
	FormData  string
	UserAgent string
	IPAddress string
}
