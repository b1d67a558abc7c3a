package main

import (
	"encoding/json"
	"fmt"
	"io"

	"api-log-analytics/internal/models"
)

// printReport writes the report section by section: structured sections as indented JSON,
// recommendations as a numbered list.
func printReport(w io.Writer, report *models.Report) error {
	sections := []struct {
		title string
		value any
	}{
		{"SUMMARY", report.Summary},
		{"ENDPOINT STATS", report.EndpointStats},
		{"PERFORMANCE ISSUES", report.PerformanceIssues},
	}
	for _, s := range sections {
		if err := printSection(w, s.title, s.value); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\n== RECOMMENDATIONS ==\n")
	if len(report.Recommendations) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for i, r := range report.Recommendations {
		fmt.Fprintf(w, "  %d. %s\n", i+1, r)
	}

	sections = []struct {
		title string
		value any
	}{
		{"COST ANALYSIS", report.CostAnalysis},
		{"CACHING OPPORTUNITIES", report.CachingOpportunities},
		{"TOTAL POTENTIAL SAVINGS", report.TotalPotentialSavings},
	}
	for _, s := range sections {
		if err := printSection(w, s.title, s.value); err != nil {
			return err
		}
	}
	return nil
}

func printSection(w io.Writer, title string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", title, err)
	}
	_, err = fmt.Fprintf(w, "\n== %s ==\n%s\n", title, data)
	return err
}
