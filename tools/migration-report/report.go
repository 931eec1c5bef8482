package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"go.temporal.io/api/enums/v1"
)

// MigrationExecution is one migration workflow run as seen by Temporal
type MigrationExecution struct {
	WorkflowID string
	RunID      string
	Status     enums.WorkflowExecutionStatus
	StartTime  time.Time
	CloseTime  *time.Time
}

// MigrationRunID strips the workflow ID prefix to recover the IPAM run ID
func (e MigrationExecution) MigrationRunID() string {
	return strings.TrimPrefix(e.WorkflowID, workflowIDPrefix)
}

// Duration is measured up to now for runs still open
func (e MigrationExecution) Duration(now time.Time) time.Duration {
	if e.CloseTime != nil {
		return e.CloseTime.Sub(e.StartTime)
	}
	return now.Sub(e.StartTime)
}

type Report struct {
	GeneratedAt   time.Time
	Total         int
	Running       int
	Completed     int
	Failed        int
	Canceled      int
	Terminated    int
	TimedOut      int
	TotalDuration time.Duration // Closed runs only
	Longest       *MigrationExecution
	Executions    []MigrationExecution
}

func buildReport(executions []MigrationExecution, now time.Time) *Report {
	report := &Report{
		GeneratedAt: now,
		Total:       len(executions),
		Executions:  make([]MigrationExecution, len(executions)),
	}
	copy(report.Executions, executions)
	sort.SliceStable(report.Executions, func(i, j int) bool {
		return report.Executions[i].StartTime.After(report.Executions[j].StartTime)
	})

	var longest time.Duration
	for i := range report.Executions {
		exec := &report.Executions[i]
		switch exec.Status {
		case enums.WORKFLOW_EXECUTION_STATUS_RUNNING:
			report.Running++
		case enums.WORKFLOW_EXECUTION_STATUS_COMPLETED:
			report.Completed++
		case enums.WORKFLOW_EXECUTION_STATUS_FAILED:
			report.Failed++
		case enums.WORKFLOW_EXECUTION_STATUS_CANCELED:
			report.Canceled++
		case enums.WORKFLOW_EXECUTION_STATUS_TERMINATED:
			report.Terminated++
		case enums.WORKFLOW_EXECUTION_STATUS_TIMED_OUT:
			report.TimedOut++
		}

		if exec.CloseTime == nil {
			continue
		}
		d := exec.Duration(now)
		report.TotalDuration += d
		if report.Longest == nil || d > longest {
			report.Longest = exec
			longest = d
		}
	}
	return report
}

// AverageDuration averages over closed runs
func (r *Report) AverageDuration() time.Duration {
	closed := r.Total - r.Running
	if closed <= 0 {
		return 0
	}
	return r.TotalDuration / time.Duration(closed)
}

func printReport(w io.Writer, r *Report) {
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintf(w, "Pool Migration Runs (%d)\n", r.Total)
	fmt.Fprintf(w, "  Running:     %d\n", r.Running)
	fmt.Fprintf(w, "  Completed:   %d (%s)\n", r.Completed, percentageString(r.Completed, r.Total))
	if r.Failed > 0 {
		fmt.Fprintf(w, "  Failed:      %d (%s)\n", r.Failed, percentageString(r.Failed, r.Total))
	}
	if r.Canceled > 0 {
		fmt.Fprintf(w, "  Canceled:    %d (%s)\n", r.Canceled, percentageString(r.Canceled, r.Total))
	}
	if r.Terminated > 0 {
		fmt.Fprintf(w, "  Terminated:  %d\n", r.Terminated)
	}
	if r.TimedOut > 0 {
		fmt.Fprintf(w, "  Timed Out:   %d\n", r.TimedOut)
	}
	if r.Total > r.Running {
		fmt.Fprintf(w, "  Avg Duration: %s\n", formatDuration(r.AverageDuration()))
	}
	if r.Longest != nil {
		fmt.Fprintf(w, "  Longest:     %s (%s)\n", r.Longest.MigrationRunID(), formatDuration(r.Longest.Duration(r.GeneratedAt)))
	}
	fmt.Fprintln(w)

	if r.Total == 0 {
		fmt.Fprintln(w, "No migration runs found.")
		fmt.Fprintln(w, strings.Repeat("-", 80))
		return
	}

	for _, exec := range r.Executions {
		fmt.Fprintf(w, "  %-14s %-38s %s  %s\n",
			formatStatus(exec.Status),
			exec.MigrationRunID(),
			exec.StartTime.Format("2006-01-02 15:04:05"),
			formatDuration(exec.Duration(r.GeneratedAt)),
		)
	}
	fmt.Fprintln(w, strings.Repeat("-", 80))
}

func formatStatus(status enums.WorkflowExecutionStatus) string {
	switch status {
	case enums.WORKFLOW_EXECUTION_STATUS_RUNNING:
		return "RUNNING"
	case enums.WORKFLOW_EXECUTION_STATUS_COMPLETED:
		return "COMPLETED"
	case enums.WORKFLOW_EXECUTION_STATUS_FAILED:
		return "FAILED"
	case enums.WORKFLOW_EXECUTION_STATUS_CANCELED:
		return "CANCELED"
	case enums.WORKFLOW_EXECUTION_STATUS_TERMINATED:
		return "TERMINATED"
	case enums.WORKFLOW_EXECUTION_STATUS_TIMED_OUT:
		return "TIMED_OUT"
	default:
		return status.String()
	}
}

// writeMarkdownReport writes the report as a markdown table
func writeMarkdownReport(path string, r *Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	var b strings.Builder
	fmt.Fprintf(&b, "# Pool Migration Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "| Status | Count |\n|---|---|\n")
	fmt.Fprintf(&b, "| Running | %d |\n", r.Running)
	fmt.Fprintf(&b, "| Completed | %d |\n", r.Completed)
	fmt.Fprintf(&b, "| Failed | %d |\n", r.Failed)
	fmt.Fprintf(&b, "| Canceled | %d |\n", r.Canceled)
	fmt.Fprintf(&b, "| Terminated | %d |\n", r.Terminated)
	fmt.Fprintf(&b, "| Timed Out | %d |\n\n", r.TimedOut)

	if len(r.Executions) > 0 {
		fmt.Fprintf(&b, "| Run ID | Status | Started | Duration |\n|---|---|---|---|\n")
		for _, exec := range r.Executions {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				exec.MigrationRunID(),
				formatStatus(exec.Status),
				exec.StartTime.Format("2006-01-02 15:04:05"),
				formatDuration(exec.Duration(r.GeneratedAt)),
			)
		}
	}

	_, err = file.WriteString(b.String())
	return err
}
