package store

import (
	"github.com/google/uuid"
)

// CreateAPIKey persists a new API key, assigning its id.
func (s *Store) CreateAPIKey(k *APIKey) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return s.db.Create(k).Error
}

// ListAPIKeys returns up to limit keys whose project_id matches exactly.
func (s *Store) ListAPIKeys(projectID string, limit int) ([]APIKey, error) {
	var keys []APIKey
	err := s.db.Where("project_id = ?", projectID).Limit(limit).Find(&keys).Error
	return keys, err
}

// FindActiveKey looks up an active key by its token value, scoped to the
// given project. A key belonging to another project does not match.
func (s *Store) FindActiveKey(key, projectID string) (*APIKey, error) {
	var k APIKey
	if err := s.db.Where("key = ? AND project_id = ? AND active = ?", key, projectID, true).First(&k).Error; err != nil {
		return nil, notFound(err)
	}
	return &k, nil
}
