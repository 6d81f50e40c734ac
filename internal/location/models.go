package location

// Point is one observed position within a run. Identity and TimestampMs are
// assigned server-side at ingestion; clients only supply the run id and the
// coordinates.
type Point struct {
	ID          int64   `json:"id"`
	Identity    string  `json:"identity"`
	RunID       string  `json:"runId"`
	TimestampMs int64   `json:"timestamp"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Summary holds the statistics derived for one run.
type Summary struct {
	TotalDistanceMeters float64 `json:"totalDistanceMeters"`
	TotalTimeSeconds    float64 `json:"totalTimeSeconds"`
	AverageSpeedMps     float64 `json:"averageSpeedMps"`
	MaxSpeedMps         float64 `json:"maxSpeedMps"`
	PointCount          int     `json:"pointCount"`
}

// Degenerate is a successful summary response for a run without enough data
// to compute statistics. It is distinguished from Summary by shape, not by
// HTTP status.
type Degenerate struct {
	Message    string `json:"message"`
	PointCount int    `json:"pointCount,omitempty"`
}

// RunRef identifies one recorded run; StartTime is epoch milliseconds.
type RunRef struct {
	RunID     string `json:"runId"`
	StartTime int64  `json:"startTime"`
}
