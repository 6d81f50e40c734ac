package location

import (
	"sort"

	"github.com/ChrisCalderwood/outdoor-run-tracker/internal/shared/geo"
)

const (
	msgNoPoints      = "No points found."
	msgNotEnoughData = "Not enough data to summarize"
	msgTooShort      = "Run duration too short"
)

// summarize computes run statistics over an unordered point set. Exactly one
// of the two returns is non-nil; degenerate inputs produce a Degenerate, not
// an error.
func summarize(points []Point) (*Summary, *Degenerate) {
	if len(points) == 0 {
		return nil, &Degenerate{Message: msgNoPoints}
	}
	if len(points) == 1 {
		return nil, &Degenerate{Message: msgNotEnoughData, PointCount: 1}
	}

	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TimestampMs < sorted[j].TimestampMs
	})

	elapsedMs := sorted[len(sorted)-1].TimestampMs - sorted[0].TimestampMs
	if elapsedMs <= 0 {
		return nil, &Degenerate{Message: msgTooShort, PointCount: len(sorted)}
	}

	var totalDistance, maxSpeed float64
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		dist := geo.HaversineKm(prev.Latitude, prev.Longitude, cur.Latitude, cur.Longitude) * 1000
		totalDistance += dist

		// A duplicate timestamp mid-run would make the instantaneous speed
		// infinite; such segments count toward distance but not max speed.
		deltaSec := float64(cur.TimestampMs-prev.TimestampMs) / 1000
		if deltaSec <= 0 {
			continue
		}
		if speed := dist / deltaSec; speed > maxSpeed {
			maxSpeed = speed
		}
	}

	totalSec := float64(elapsedMs) / 1000
	return &Summary{
		TotalDistanceMeters: totalDistance,
		TotalTimeSeconds:    totalSec,
		AverageSpeedMps:     totalDistance / totalSec,
		MaxSpeedMps:         maxSpeed,
		PointCount:          len(sorted),
	}, nil
}
