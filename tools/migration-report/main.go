// Command migration-report summarizes pool migration workflows recorded in Temporal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"
)

const (
	defaultTemporalHost = "localhost:7233"
	defaultNamespace    = "default"
	workflowType        = "MigratePoolForProfile"
	workflowIDPrefix    = "ip-migration-"
)

type Config struct {
	TemporalHost string
	Namespace    string
	Since        time.Duration // Only runs started within this window (0 = all)
	PageSize     int
	MaxRuns      int // Stop after this many runs (0 = unlimited)
	QueryTimeout time.Duration
	OutputFile   string // Markdown report path (optional)
	Debug        bool
}

func main() {
	cfg := parseFlags()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, stopping...")
		cancel()
	}()

	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHost,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to Temporal at %s: %v\n", cfg.TemporalHost, err)
		os.Exit(1)
	}
	defer c.Close()

	executions, err := listMigrationRuns(ctx, c, cfg, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to collect migration runs: %v\n", err)
		os.Exit(1)
	}

	report := buildReport(executions, time.Now())
	printReport(os.Stdout, report)

	if cfg.OutputFile != "" {
		if err := writeMarkdownReport(cfg.OutputFile, report); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Report written to %s\n", cfg.OutputFile)
	}
}

func parseFlags() *Config {
	cfg := &Config{}
	flag.StringVar(&cfg.TemporalHost, "temporal-host", defaultTemporalHost, "Temporal frontend host:port")
	flag.StringVar(&cfg.Namespace, "namespace", defaultNamespace, "Temporal namespace")
	flag.DurationVar(&cfg.Since, "since", 7*24*time.Hour, "Only include runs started within this window (0 for all)")
	flag.IntVar(&cfg.PageSize, "page-size", 100, "Page size for Temporal queries")
	flag.IntVar(&cfg.MaxRuns, "max-runs", 0, "Maximum number of runs to collect (0 for unlimited)")
	flag.DurationVar(&cfg.QueryTimeout, "query-timeout", 30*time.Second, "Timeout for each Temporal query")
	flag.StringVar(&cfg.OutputFile, "output", "", "Write a markdown report to this file")
	flag.BoolVar(&cfg.Debug, "debug", false, "Print queries as they run")
	flag.Parse()

	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	return cfg
}

// buildQuery returns the visibility query selecting migration workflows
func buildQuery(cfg *Config, now time.Time) string {
	query := fmt.Sprintf("WorkflowType = '%s' AND WorkflowId STARTS_WITH '%s'", workflowType, workflowIDPrefix)
	if cfg.Since > 0 {
		query = fmt.Sprintf("%s AND StartTime > '%s'", query, now.Add(-cfg.Since).UTC().Format(time.RFC3339))
	}
	return query + " ORDER BY StartTime DESC"
}

func listMigrationRuns(ctx context.Context, c client.Client, cfg *Config, now time.Time) ([]MigrationExecution, error) {
	query := buildQuery(cfg, now)
	if cfg.Debug {
		fmt.Printf("[DEBUG] Query: %s\n", query)
	}

	var executions []MigrationExecution
	var nextPageToken []byte
	for {
		queryCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
		resp, err := c.ListWorkflow(queryCtx, &workflowservice.ListWorkflowExecutionsRequest{
			Namespace:     cfg.Namespace,
			Query:         query,
			PageSize:      int32(cfg.PageSize),
			NextPageToken: nextPageToken,
		})
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return executions, ctx.Err()
			}
			return nil, fmt.Errorf("failed to list workflows: %w", err)
		}

		for _, info := range resp.Executions {
			exec := MigrationExecution{
				WorkflowID: info.Execution.WorkflowId,
				RunID:      info.Execution.RunId,
				Status:     info.Status,
				StartTime:  info.StartTime.AsTime(),
			}
			if info.CloseTime != nil {
				closeTime := info.CloseTime.AsTime()
				exec.CloseTime = &closeTime
			}
			executions = append(executions, exec)
			if cfg.MaxRuns > 0 && len(executions) >= cfg.MaxRuns {
				return executions, nil
			}
		}

		if cfg.Debug {
			fmt.Printf("[DEBUG] Collected %d runs so far\n", len(executions))
		}

		nextPageToken = resp.NextPageToken
		if len(nextPageToken) == 0 {
			return executions, nil
		}
	}
}
