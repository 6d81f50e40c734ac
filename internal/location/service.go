package location

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ChrisCalderwood/outdoor-run-tracker/internal/db"

	"github.com/redis/go-redis/v9"
)

type Service struct {
	db       db.Querier
	cache    *redis.Client
	cacheTTL time.Duration
	now      func() time.Time
}

// NewService builds the location service. cache may be nil, which disables
// the run-list cache entirely.
func NewService(q db.Querier, cache *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{db: q, cache: cache, cacheTTL: cacheTTL, now: time.Now}
}

// Ingest appends one point for the identity, stamping it with the server
// clock. Client timestamps are never trusted.
func (s *Service) Ingest(ctx context.Context, identity, runID string, lat, lng float64) (Point, error) {
	p := Point{
		Identity:    identity,
		RunID:       runID,
		TimestampMs: s.now().UnixMilli(),
		Latitude:    lat,
		Longitude:   lng,
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO location_points (identity, run_id, timestamp_ms, latitude, longitude)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`, p.Identity, p.RunID, p.TimestampMs, p.Latitude, p.Longitude)
	if err := row.Scan(&p.ID); err != nil {
		return Point{}, err
	}

	s.invalidateRuns(ctx, identity)
	return p, nil
}

// Summarize recomputes the run's statistics from scratch on every call.
// Exactly one of the first two returns is non-nil when err is nil.
func (s *Service) Summarize(ctx context.Context, identity, runID string) (*Summary, *Degenerate, error) {
	points, err := s.pointsByIdentity(ctx, identity)
	if err != nil {
		return nil, nil, err
	}

	var run []Point
	for _, p := range points {
		if p.RunID == runID {
			run = append(run, p)
		}
	}

	sum, deg := summarize(run)
	return sum, deg, nil
}

// ListRuns returns the identity's runs, most recent start first, read
// through the optional redis cache.
func (s *Service) ListRuns(ctx context.Context, identity string) ([]RunRef, error) {
	if cached, ok := s.cachedRuns(ctx, identity); ok {
		return cached, nil
	}

	points, err := s.pointsByIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}

	runs := runIndex(points)
	s.storeRuns(ctx, identity, runs)
	return runs, nil
}

// pointsByIdentity scans the identity partition. The store is indexed by
// identity only; narrowing to a single run is a pipeline step. Ordering by
// id second makes points with equal timestamps keep insertion order.
func (s *Service) pointsByIdentity(ctx context.Context, identity string) ([]Point, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, identity, run_id, timestamp_ms, latitude, longitude
		FROM location_points
		WHERE identity=$1
		ORDER BY timestamp_ms, id
	`, identity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.ID, &p.Identity, &p.RunID, &p.TimestampMs, &p.Latitude, &p.Longitude); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func runsCacheKey(identity string) string {
	return "runs:" + identity
}

func (s *Service) cachedRuns(ctx context.Context, identity string) ([]RunRef, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, runsCacheKey(identity)).Bytes()
	if err != nil {
		return nil, false
	}
	var runs []RunRef
	if err := json.Unmarshal(raw, &runs); err != nil {
		return nil, false
	}
	return runs, true
}

func (s *Service) storeRuns(ctx context.Context, identity string, runs []RunRef) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(runs)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, runsCacheKey(identity), payload, s.cacheTTL).Err(); err != nil {
		log.Printf("runs cache set error: %v", err)
	}
}

func (s *Service) invalidateRuns(ctx context.Context, identity string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, runsCacheKey(identity)).Err(); err != nil {
		log.Printf("runs cache del error: %v", err)
	}
}
