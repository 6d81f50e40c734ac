package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ChrisCalderwood/outdoor-run-tracker/internal/tracker"

	"github.com/spf13/viper"
)

type trackerConfig struct {
	ServerURL string `mapstructure:"TRACKER_SERVER_URL"`
	Token     string `mapstructure:"TRACKER_TOKEN"`
	GPXPath   string `mapstructure:"TRACKER_GPX_PATH"`
	ListRuns  bool   `mapstructure:"TRACKER_LIST_RUNS"`
}

func loadConfig() trackerConfig {
	viper.AutomaticEnv()
	viper.SetDefault("TRACKER_SERVER_URL", "http://localhost:8080")
	viper.SetDefault("TRACKER_GPX_PATH", "route.gpx")
	viper.SetDefault("TRACKER_LIST_RUNS", false)

	var cfg trackerConfig
	_ = viper.Unmarshal(&cfg)
	return cfg
}

func main() {
	cfg := loadConfig()
	client := tracker.NewClient(cfg.ServerURL, tracker.StaticToken(cfg.Token))

	if cfg.ListRuns {
		listRuns(client)
		return
	}

	provider, err := tracker.NewGPXProvider(cfg.GPXPath)
	if err != nil {
		log.Fatalf("position source: %v", err)
	}

	sampler := tracker.NewSampler(provider, client)
	runID, err := sampler.Start()
	if err != nil {
		log.Fatalf("start run: %v", err)
	}
	log.Printf("recording run %s, Ctrl-C to stop", runID)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals

	completed, err := sampler.Stop()
	if err != nil {
		log.Fatalf("stop run: %v", err)
	}

	printSummary(client, completed)
}

func listRuns(client *tracker.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runs, err := client.Runs(ctx)
	if err != nil {
		log.Fatalf("list runs: %v", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}
	for _, run := range runs {
		fmt.Printf("%s  started %s\n", run.RunID, time.UnixMilli(run.StartTime).Format(time.RFC1123))
	}
}

func printSummary(client *tracker.Client, runID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	summary, err := client.Summary(ctx, runID)
	if err != nil {
		log.Fatalf("summary for run %s: %v", runID, err)
	}
	if summary.Message != "" {
		fmt.Println(summary.Message)
		return
	}

	fmt.Printf("Distance:  %.2f km\n", summary.TotalDistanceMeters/1000)
	fmt.Printf("Time:      %.0f sec\n", summary.TotalTimeSeconds)
	fmt.Printf("Avg speed: %.2f km/h\n", summary.AverageSpeedMps*3.6)
	fmt.Printf("Top speed: %.2f km/h\n", summary.MaxSpeedMps*3.6)
	fmt.Printf("Points:    %d\n", summary.PointCount)
}
