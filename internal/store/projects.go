package store

import (
	"github.com/google/uuid"
)

// CreateProject persists a new project, assigning its id.
func (s *Store) CreateProject(p *Project) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return s.db.Create(p).Error
}

// ListProjects returns up to limit projects, most recently created first.
func (s *Store) ListProjects(limit int) ([]Project, error) {
	var projects []Project
	err := s.db.Order("created_at DESC").Limit(limit).Find(&projects).Error
	return projects, err
}

// GetProjectByID looks up a project by primary key.
func (s *Store) GetProjectByID(id uuid.UUID) (*Project, error) {
	var p Project
	if err := s.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// GetProjectBySlug resolves a project by exact slug match. Slugs are not
// enforced unique at creation; the most recently created match wins.
func (s *Store) GetProjectBySlug(slug string) (*Project, error) {
	var p Project
	if err := s.db.Where("slug = ?", slug).Order("created_at DESC").First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}
