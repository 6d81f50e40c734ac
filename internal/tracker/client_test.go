package tracker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestClientSubmit(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody pointPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Location received"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticToken("token-1"))
	if err := c.Submit(context.Background(), "run-1", Position{Latitude: 1.5, Longitude: 2.5}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if gotAuth != "Bearer token-1" {
		t.Fatalf("unexpected auth header: %s", gotAuth)
	}
	if gotPath != "/location" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotBody.RunID != "run-1" || gotBody.Latitude != 1.5 || gotBody.Longitude != 2.5 {
		t.Fatalf("unexpected payload: %+v", gotBody)
	}
}

func TestClientSubmitRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticToken("token-1"))
	if err := c.Submit(context.Background(), "run-1", Position{}); err == nil {
		t.Fatalf("expected error on rejection")
	}
}

func TestClientCredentialFailureAbortsBeforeRequest(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticToken(""))
	if err := c.Submit(context.Background(), "run-1", Position{}); err == nil {
		t.Fatalf("expected credential error")
	}
	if atomic.LoadInt32(&requests) != 0 {
		t.Fatalf("request must not be sent without a credential")
	}
}

func TestClientSummaryFullShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/summary/run-1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"totalDistanceMeters":111.19,"totalTimeSeconds":10,"averageSpeedMps":11.12,"maxSpeedMps":11.12,"pointCount":2}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticToken("token-1"))
	sum, err := c.Summary(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Message != "" || sum.PointCount != 2 || sum.TotalTimeSeconds != 10 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestClientSummaryDegenerateShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"message":"Not enough data to summarize","pointCount":1}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticToken("token-1"))
	sum, err := c.Summary(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Message != "Not enough data to summarize" || sum.PointCount != 1 {
		t.Fatalf("unexpected degenerate: %+v", sum)
	}
}

func TestClientRuns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/runs" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"runId":"run-b","startTime":2000},{"runId":"run-a","startTime":1000}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticToken("token-1"))
	runs, err := c.Runs(context.Background())
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 2 || runs[0].RunID != "run-b" || runs[0].StartTime != 2000 {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}

func TestClientRunsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticToken("token-1"))
	if _, err := c.Runs(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
