package handlers

import (
	"github.com/google/uuid"

	"apimon/internal/store"
)

// Store defines the storage operations the handlers depend on. The
// concrete *store.Store is injected at startup; tests substitute an
// in-memory fake.
type Store interface {
	CreateProject(p *store.Project) error
	ListProjects(limit int) ([]store.Project, error)
	GetProjectByID(id uuid.UUID) (*store.Project, error)
	GetProjectBySlug(slug string) (*store.Project, error)

	CreateAPIKey(k *store.APIKey) error
	ListAPIKeys(projectID string, limit int) ([]store.APIKey, error)
	FindActiveKey(key, projectID string) (*store.APIKey, error)

	InsertEvent(e *store.Event) error
	Stats(projectID string) (*store.ProjectStats, error)

	Ping() error
	Tables() ([]string, error)
}
