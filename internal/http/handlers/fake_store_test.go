package handlers

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"apimon/internal/store"
)

// fakeStore is an in-memory Store for handler tests. Stats mirrors the
// SQL contract: counts, mean latency, and a sparse ascending hourly
// histogram over the trailing 24 hours.
type fakeStore struct {
	projects []store.Project
	keys     []store.APIKey
	events   []store.Event

	pingErr   error
	tables    []string
	tablesErr error
}

func (f *fakeStore) CreateProject(p *store.Project) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now().UTC()
	f.projects = append(f.projects, *p)
	return nil
}

func (f *fakeStore) ListProjects(limit int) ([]store.Project, error) {
	if len(f.projects) > limit {
		return f.projects[:limit], nil
	}
	return f.projects, nil
}

func (f *fakeStore) GetProjectByID(id uuid.UUID) (*store.Project, error) {
	for i := range f.projects {
		if f.projects[i].ID == id {
			return &f.projects[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) GetProjectBySlug(slug string) (*store.Project, error) {
	var match *store.Project
	for i := range f.projects {
		p := &f.projects[i]
		if p.Slug != slug {
			continue
		}
		if match == nil || p.CreatedAt.After(match.CreatedAt) {
			match = p
		}
	}
	if match == nil {
		return nil, store.ErrNotFound
	}
	return match, nil
}

func (f *fakeStore) CreateAPIKey(k *store.APIKey) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	k.CreatedAt = time.Now().UTC()
	f.keys = append(f.keys, *k)
	return nil
}

func (f *fakeStore) ListAPIKeys(projectID string, limit int) ([]store.APIKey, error) {
	var keys []store.APIKey
	for _, k := range f.keys {
		if k.ProjectID == projectID {
			keys = append(keys, k)
		}
		if len(keys) == limit {
			break
		}
	}
	return keys, nil
}

func (f *fakeStore) FindActiveKey(key, projectID string) (*store.APIKey, error) {
	for i := range f.keys {
		k := &f.keys[i]
		if k.Key == key && k.ProjectID == projectID && k.Active {
			return k, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) InsertEvent(e *store.Event) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeStore) Stats(projectID string) (*store.ProjectStats, error) {
	stats := &store.ProjectStats{Hourly: []store.HourlyBucket{}}
	since := time.Now().UTC().Add(-24 * time.Hour)
	counts := map[time.Time]int64{}

	var sum float64
	for _, e := range f.events {
		if e.ProjectID != projectID {
			continue
		}
		stats.Total++
		if e.Status >= 400 {
			stats.Errors++
		}
		sum += e.LatencyMs
		if !e.CreatedAt.Before(since) {
			counts[e.CreatedAt.UTC().Truncate(time.Hour)]++
		}
	}
	if stats.Total > 0 {
		stats.AvgLatency = sum / float64(stats.Total)
	}

	hours := make([]time.Time, 0, len(counts))
	for h := range counts {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Before(hours[j]) })
	for _, h := range hours {
		stats.Hourly = append(stats.Hourly, store.HourlyBucket{
			T:     h.Format("2006-01-02T15:04:05") + "Z",
			Count: counts[h],
		})
	}
	return stats, nil
}

func (f *fakeStore) Ping() error {
	return f.pingErr
}

func (f *fakeStore) Tables() ([]string, error) {
	if f.tablesErr != nil {
		return nil, f.tablesErr
	}
	return f.tables, nil
}

// doRequest drives a handler with a synthetic request context.
func doRequest(h fasthttp.RequestHandler, method, uri string, body []byte, headers map[string]string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	for k, v := range headers {
		ctx.Request.Header.Set(k, v)
	}
	h(ctx)
	return ctx
}
