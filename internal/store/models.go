package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project is a tenant-registered project. Events and API keys reference it
// by its id rendered as a plain string.
type Project struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string  `gorm:"size:255;not null" json:"name"`
	Slug        string  `gorm:"size:255;not null;index" json:"slug"`
	Description *string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}

func (Project) TableName() string { return "projects" }

// APIKey is an ingestion credential scoped to a single project. The key
// value is stored as-is so ingest can match it exactly; it is returned in
// plaintext exactly once, at creation.
type APIKey struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// ProjectID holds the owning project's id as a string, matching how
	// events reference projects.
	ProjectID string `gorm:"size:64;not null;index" json:"project_id"`

	// Name is a user-friendly label for this key (e.g. "payments-api").
	Name string `gorm:"size:128;not null" json:"name"`

	// Key is the generated token value. Never serialized in list responses.
	Key string `gorm:"uniqueIndex;size:255;not null" json:"-"`

	// Active indicates whether this key may be associated with events.
	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
}

func (APIKey) TableName() string { return "api_keys" }

// Event represents a single ingested API request. Append-only: rows are
// written once and never updated or deleted.
type Event struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ProjectID string `gorm:"size:64;not null;index" json:"project_id"`

	// APIKeyID is set only when the submitted key matched an active key
	// belonging to the resolved project.
	APIKeyID *string `gorm:"size:64" json:"api_key_id"`

	Method    string  `gorm:"size:16;not null" json:"method"`
	Path      string  `gorm:"type:text" json:"path"`
	Status    int     `gorm:"not null" json:"status"`
	LatencyMs float64 `gorm:"not null" json:"latency_ms"`

	IP           *string `gorm:"size:64" json:"ip"`
	UserAgent    *string `gorm:"type:text" json:"user_agent"`
	RequestSize  *int64  `json:"request_size"`
	ResponseSize *int64  `json:"response_size"`
	ErrorMessage *string `gorm:"type:text" json:"error_message"`

	// Attributes holds arbitrary key/value pairs attached by the client,
	// so callers can tag events (e.g. plan, region) without schema changes.
	Attributes datatypes.JSONMap `gorm:"type:json" json:"attributes,omitempty"`

	// CreatedAt is assigned by the ingestion handler at insert time and
	// drives the hourly stats window.
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Event) TableName() string { return "events" }
