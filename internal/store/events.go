package store

import (
	"time"

	"github.com/google/uuid"
)

// InsertEvent persists a single ingested event, assigning its id. The
// caller must have set CreatedAt already; events are never batched.
func (s *Store) InsertEvent(e *Event) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return s.db.Create(e).Error
}

// HourlyBucket is one point of the trailing-24h histogram: the ISO-8601
// start of the hour and the number of events in it.
type HourlyBucket struct {
	T     string `json:"t"`
	Count int64  `json:"count"`
}

// ProjectStats holds the aggregate counters for one project.
type ProjectStats struct {
	Total      int64          `json:"total"`
	Errors     int64          `json:"errors"`
	AvgLatency float64        `json:"avg_latency"`
	Hourly     []HourlyBucket `json:"hourly"`
}

// Stats aggregates events for the given project id: total count, error
// count (status >= 400), mean latency, and a sparse hourly histogram over
// the trailing 24 hours (UTC), ascending by bucket start. Hours with no
// events are omitted. All aggregation is delegated to the database.
func (s *Store) Stats(projectID string) (*ProjectStats, error) {
	stats := &ProjectStats{Hourly: []HourlyBucket{}}

	if err := s.db.Model(&Event{}).
		Where("project_id = ?", projectID).
		Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&Event{}).
		Where("project_id = ? AND status >= ?", projectID, 400).
		Count(&stats.Errors).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&Event{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(AVG(latency_ms), 0)").
		Scan(&stats.AvgLatency).Error; err != nil {
		return nil, err
	}

	// Use Raw so GROUP BY is never parameterized. Timestamps are stored in
	// UTC, so date_trunc buckets are already hour starts in UTC.
	since := time.Now().UTC().Add(-24 * time.Hour)
	sql := `SELECT to_char(date_trunc('hour', created_at), 'YYYY-MM-DD"T"HH24:MI:SS') || 'Z' AS t, count(*) AS count ` +
		`FROM events WHERE project_id = ? AND created_at >= ? ` +
		`GROUP BY date_trunc('hour', created_at) ORDER BY 1`
	if err := s.db.Raw(sql, projectID, since).Scan(&stats.Hourly).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
