package paste

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/dPaste/cmd/util"
	"github.com/ValentinKolb/dPaste/lib/document"
	"github.com/ValentinKolb/dPaste/rpc/common"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for dPaste servers",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfNumThreads  = 10
	perfRequests    = 1000
	perfValueSize   = 1024
	perfKeySpread   = 100
	perfSkip        = make([]string, 0)
	perfPercentiles = []float64{0.5, 0.95, 0.99}
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. put,miss)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of concurrent clients"))
	key = "requests"
	perfTestCmd.Flags().Int(key, 1000, util.WrapString("Number of requests per benchmark"))
	key = "size"
	perfTestCmd.Flags().Int(key, 1024, util.WrapString("Size of the stored documents in bytes"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different documents the read benchmarks use"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfNumThreads = max(1, viper.GetInt("threads"))
	perfRequests = max(1, viper.GetInt("requests"))
	perfValueSize = max(1, viper.GetInt("size"))
	perfKeySpread = max(1, viper.GetInt("keys"))
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

// benchResult holds the measurements of one benchmark
type benchResult struct {
	name    string
	timer   gometrics.Timer
	errors  gometrics.Counter
	elapsed time.Duration
}

func runPerf(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Performance testing tool for dPaste servers")

	// Print configuration
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintln(out, util.GetClientConfig().String())
	fmt.Fprintf(out, "Threads: %d, Requests: %d, Size: %d bytes\n\n", perfNumThreads, perfRequests, perfValueSize)

	registry := gometrics.NewRegistry()
	value := bytes.Repeat([]byte("x"), perfValueSize)

	// documents read by the get benchmarks
	keys := make([]string, 0, perfKeySpread)
	for i := 0; i < perfKeySpread; i++ {
		key, err := pasteClient.Put(value, 0)
		if err != nil {
			return fmt.Errorf("failed to prepare documents: %w", err)
		}
		keys = append(keys, key)
	}

	benchmarks := []struct {
		name string
		op   func(i int) error
	}{
		{"put", func(int) error {
			_, err := pasteClient.Put(value, 0)
			return err
		}},
		{"get", func(i int) error {
			_, err := pasteClient.Get(keys[i%len(keys)])
			return err
		}},
		{"raw", func(i int) error {
			_, err := pasteClient.GetRaw(keys[i%len(keys)])
			return err
		}},
		{"miss", func(i int) error {
			_, err := pasteClient.GetRaw("__perf-missing-" + strconv.Itoa(i))
			if errors.Is(err, document.ErrNotFound) {
				return nil // expected
			}
			if err == nil {
				return fmt.Errorf("document __perf-missing-%d exists", i)
			}
			return err
		}},
	}

	results := make([]*benchResult, 0, len(benchmarks))
	for _, b := range benchmarks {
		if shouldSkip(b.name) {
			printSkipped(out, b.name)
			continue
		}
		result := runBenchmark(registry, b.name, perfRequests, perfNumThreads, b.op)
		printResult(out, result)
		results = append(results, result)
	}

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Fprintf(out, "\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results, util.GetClientConfig()); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Fprintln(out, "Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// runBenchmark calls op requests times from threads goroutines and records every call
func runBenchmark(registry gometrics.Registry, name string, requests, threads int, op func(i int) error) *benchResult {
	result := &benchResult{
		name:   name,
		timer:  gometrics.GetOrRegisterTimer(name+".latency", registry),
		errors: gometrics.GetOrRegisterCounter(name+".errors", registry),
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	start := time.Now()

	for t := 0; t < threads; t++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= requests {
					return
				}
				callStart := time.Now()
				err := op(i)
				result.timer.UpdateSince(callStart)
				if err != nil {
					result.errors.Inc(1)
				}
			}
		}()
	}

	wg.Wait()
	result.elapsed = time.Since(start)
	return result
}

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == strings.TrimSpace(skip) {
			return true
		}
	}
	return false
}

func opsPerSec(result *benchResult) float64 {
	if result.elapsed <= 0 {
		return 0
	}
	return float64(result.timer.Count()) / result.elapsed.Seconds()
}

func printSkipped(out io.Writer, test string) {
	fmt.Fprintf(out, "%-8sskipped\n", test)
}

// printResult prints the result of a benchmark in a formatted way
func printResult(out io.Writer, result *benchResult) {
	snapshot := result.timer.Snapshot()
	ps := snapshot.Percentiles(perfPercentiles)

	fmt.Fprintf(out, "%-8s%6d req  %4d err  mean %-10s p50 %-10s p95 %-10s p99 %-10s max %-10s %.0f ops/sec\n",
		result.name,
		snapshot.Count(),
		result.errors.Count(),
		time.Duration(snapshot.Mean()).Round(time.Microsecond),
		time.Duration(ps[0]).Round(time.Microsecond),
		time.Duration(ps[1]).Round(time.Microsecond),
		time.Duration(ps[2]).Round(time.Microsecond),
		time.Duration(snapshot.Max()).Round(time.Microsecond),
		opsPerSec(result),
	)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results []*benchResult, config *common.ClientConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "Requests", "Errors", "MeanNs", "P50Ns", "P95Ns", "P99Ns", "MaxNs", "OpsPerSec",
		"Endpoints", "TimeoutSec", "RetryCount", "ConnectionsPerEndpoint",
		"Threads", "ValueSize", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for _, result := range results {
		snapshot := result.timer.Snapshot()
		ps := snapshot.Percentiles(perfPercentiles)

		row := []string{
			result.name,
			strconv.FormatInt(snapshot.Count(), 10),
			strconv.FormatInt(result.errors.Count(), 10),
			fmt.Sprintf("%.0f", snapshot.Mean()),
			fmt.Sprintf("%.0f", ps[0]),
			fmt.Sprintf("%.0f", ps[1]),
			fmt.Sprintf("%.0f", ps[2]),
			strconv.FormatInt(snapshot.Max(), 10),
			fmt.Sprintf("%.0f", opsPerSec(result)),
			strings.Join(config.Endpoints, ";"),
			strconv.Itoa(config.TimeoutSecond),
			strconv.Itoa(config.RetryCount),
			strconv.Itoa(config.ConnectionsPerEndpoint),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfValueSize),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", result.name, err)
		}
	}

	return nil
}
