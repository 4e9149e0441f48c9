package types

import "time"

// Status is the terminal outcome recorded in the ledger for one source object.
type Status string

const (
	StatusProcessed Status = "processed"
	StatusFailed    Status = "failed"
)

// SourceObject is one recorded meeting file as listed by the object store.
// Immutable once listed.
type SourceObject struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FolderID  string    `json:"folder_id"`
	MimeType  string    `json:"mime_type"`
	CreatedAt time.Time `json:"created_at"`
}

// LedgerEntry is the terminal record kept per object id. Error is empty for
// processed entries.
type LedgerEntry struct {
	ObjectID  string    `json:"object_id"`
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}
