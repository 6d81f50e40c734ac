package tracker

import (
	"context"
	"errors"
	"sync"

	"github.com/tkrajina/gpxgo/gpx"
)

// GPXProvider replays the points of a GPX file in order, standing in for a
// live positioning device. Once the track is exhausted it keeps returning
// the final point.
type GPXProvider struct {
	mu     sync.Mutex
	points []Position
	next   int
}

func NewGPXProvider(path string) (*GPXProvider, error) {
	file, err := gpx.ParseFile(path)
	if err != nil {
		return nil, err
	}

	points := flattenGPX(file)
	if len(points) == 0 {
		return nil, errors.New("gpx file contains no points")
	}
	return &GPXProvider{points: points}, nil
}

func flattenGPX(file *gpx.GPX) []Position {
	var points []Position
	for _, track := range file.Tracks {
		for _, segment := range track.Segments {
			for _, p := range segment.Points {
				points = append(points, Position{Latitude: p.Point.Latitude, Longitude: p.Point.Longitude})
			}
		}
	}
	if len(points) == 0 {
		for _, route := range file.Routes {
			for _, p := range route.Points {
				points = append(points, Position{Latitude: p.Point.Latitude, Longitude: p.Point.Longitude})
			}
		}
	}
	return points
}

func (g *GPXProvider) Current(ctx context.Context, _ AcquireOptions) (Position, error) {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Position{}, ErrTimeout
		}
		return Position{}, ErrUnavailable
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	pos := g.points[g.next]
	if g.next < len(g.points)-1 {
		g.next++
	}
	return pos, nil
}
