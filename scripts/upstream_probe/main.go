package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// upstream_probe checks that every core API endpoint the gateway
// depends on answers, before a deploy is pointed at it.

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type config struct {
	Targets []target `json:"targets"`
}

type probe struct {
	Target   target
	Status   int
	Duration time.Duration
	Error    error
}

func main() {
	var (
		base        string
		token       string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:3000", "Core API base URL")
	flag.StringVar(&token, "token", "", "Bearer token for authenticated endpoints")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "upstream_probe", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	failing := 0

	fmt.Printf("%-8s %-45s %-8s %s\n", "METHOD", "PATH", "STATUS", "DURATION")
	for _, t := range targets {
		p := probeTarget(client, base, token, t)
		status := "ERR"
		if p.Error == nil {
			status = fmt.Sprintf("%d", p.Status)
		}
		fmt.Printf("%-8s %-45s %-8s %s\n", t.Method, t.Path, status, p.Duration.Round(time.Millisecond))
		if t.Critical && (p.Error != nil || p.Status >= http.StatusInternalServerError) {
			failing++
		}
	}

	fmt.Printf("Failing critical targets: %d\n", failing)
	if failing > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return cfg.Targets, nil
}

func probeTarget(client *http.Client, base, token string, t target) probe {
	req, err := http.NewRequest(t.Method, base+t.Path, nil)
	if err != nil {
		return probe{Target: t, Error: err}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := client.Do(req)
	duration := time.Since(start)
	if err != nil {
		return probe{Target: t, Duration: duration, Error: err}
	}
	defer resp.Body.Close()
	return probe{Target: t, Status: resp.StatusCode, Duration: duration}
}
