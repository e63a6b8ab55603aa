// Package main provides a performance benchmarking tool for the repokit CLI.
// It measures contributor collection on real repositories with both history
// backends and SARIF processing on generated documents of increasing size,
// treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - repokit binary installed and available in PATH
// - Test repositories cloned to the specified base directory
// - Git repositories: csv-parser, fd, git, kubernetes
//
// Usage: go run benchmark/main.go [repo-base-dir]
//
//	repo-base-dir: Directory containing test repositories
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// BenchmarkResult holds the cold and average warm time of one benchmark target.
type BenchmarkResult struct {
	Target   string
	Command  string
	Variant  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase   string
	Timeout    time.Duration
	Runs       int
	TestRepos  []string
	Backends   []string
	SARIFSizes []int
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		RepoBase:   os.Args[1],
		Timeout:    5 * time.Minute,
		Runs:       4,
		TestRepos:  []string{"csv-parser", "fd", "git", "kubernetes"},
		Backends:   []string{"git", "go-git"},
		SARIFSizes: []int{1000, 10000, 100000},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runContributorBenchmarks(config)
	sarifResults, err := runSARIFBenchmarks(config)
	if err != nil {
		fmt.Printf("SARIF benchmark failed: %v\n", err)
		os.Exit(1)
	}
	results = append(results, sarifResults...)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that repokit binary and test repositories exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("repokit"); err != nil {
		return fmt.Errorf("repokit binary not found in PATH")
	}
	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}
	return nil
}

// runContributorBenchmarks times a dry-run contributors update per repo and backend.
func runContributorBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult
	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		for _, backend := range config.Backends {
			fmt.Printf("Benchmarking contributors on %s (%s)\n", repo, backend)
			args := []string{"contributors", "--dry-run", "--repo", repoPath, "--vcs-backend", backend}
			results = append(results, runSuite(config, repo, "contributors", backend, args))
		}
	}
	return results
}

// runSARIFBenchmarks times the sarif command on generated documents.
func runSARIFBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	dir, err := os.MkdirTemp("", "repokit-benchmark-*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.RemoveAll(dir) }()

	var results []BenchmarkResult
	for _, size := range config.SARIFSizes {
		input := filepath.Join(dir, fmt.Sprintf("scan_%d.sarif", size))
		if err := writeSyntheticSARIF(input, size); err != nil {
			return nil, err
		}
		fmt.Printf("Benchmarking sarif with %d results\n", size)
		args := []string{"sarif", input, "--format", "json"}
		results = append(results, runSuite(config, strconv.Itoa(size)+" results", "sarif", "json", args))
	}
	return results, nil
}

// writeSyntheticSARIF writes a single-run document whose results cycle through
// every level and a handful of rules with and without security severities.
func writeSyntheticSARIF(path string, size int) error {
	rules := []map[string]any{
		{"id": "go/sql-injection", "properties": map[string]any{"security-severity": "9.8", "tags": []string{"security"}}},
		{"id": "go/path-injection", "properties": map[string]any{"security-severity": "7.5"}},
		{"id": "go/weak-crypto", "properties": map[string]any{"security-severity": "5.0"}},
		{"id": "go/unused"},
	}
	levels := []string{"error", "warning", "note"}
	results := make([]map[string]any, 0, size)
	for i := range size {
		results = append(results, map[string]any{
			"ruleId":  rules[i%len(rules)]["id"],
			"level":   levels[i%len(levels)],
			"message": map[string]any{"text": fmt.Sprintf("finding %d", i)},
		})
	}
	doc := map[string]any{
		"version": "2.1.0",
		"runs": []any{map[string]any{
			"tool":    map[string]any{"driver": map[string]any{"name": "benchmark", "rules": rules}},
			"results": results,
		}},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// runSuite runs one benchmark target several times and formats the timings.
func runSuite(config BenchmarkConfig, target, command, variant string, args []string) BenchmarkResult {
	cold, warm := runBenchmark(config, args)

	coldStr, warmStr := "TIMEOUT", "TIMEOUT"
	if cold > 0 {
		coldStr = fmt.Sprintf("%.3fs", cold)
	}
	if len(warm) > 0 {
		var sum float64
		for _, t := range warm {
			sum += t
		}
		warmStr = fmt.Sprintf("%.3fs", sum/float64(len(warm)))
	}
	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldStr, warmStr)

	return BenchmarkResult{Target: target, Command: command, Variant: variant, ColdTime: coldStr, WarmTime: warmStr}
}

// runBenchmark executes a repokit command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, args []string) (coldTime float64, warmTimes []float64) {
	var times []float64
	for range config.Runs {
		start := time.Now()
		cmd := exec.Command("repokit", args...)

		done := make(chan error, 1)
		go func() {
			_, err := cmd.CombinedOutput()
			done <- err
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/repokit_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"target", "cmd", "variant", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write([]string{r.Target, r.Command, r.Variant, r.ColdTime, r.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	printCommandSummary(results, "contributors", "Contributors Update:")
	printCommandSummary(results, "sarif", "SARIF Processing:")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, r := range results {
		if r.Command == command {
			fmt.Printf("  %-16s %-7s: Cold: %s, Warm: %s\n", r.Target, r.Variant, r.ColdTime, r.WarmTime)
		}
	}
}
