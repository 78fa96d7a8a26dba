// Package observability renders reports as boxed, human-readable text for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/jobsearch-insights/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted report output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

func pad(s string, n int) string {
	if gap := n - utf8.RuneCountInString(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// PrintReport prints every section of the report.
func (p *Printer) PrintReport(r *types.Report) {
	if r == nil {
		return
	}
	p.PrintFunnel(r.Funnel, r.WeeklyCadence)
	p.PrintTiming(r.AverageTimes, r.Activity)
	p.PrintCorrelations(r.Correlations)
	p.PrintPatterns(r.Patterns)
	p.PrintForecast(r.Forecast)
	p.PrintScenarios(r.Scenarios)
	p.PrintRecommendations(r.Recommendations)
	p.PrintSkipped(r.Skipped)
}

// PrintFunnel outputs the application funnel.
func (p *Printer) PrintFunnel(f types.FunnelMetrics, weeklyCadence float64) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Applications:   %d (%d active)\n", f.Total, f.Active))
	sb.WriteString(fmt.Sprintf("Responses:      %d (%.1f%%)\n", f.Responded, f.ResponseRate))
	sb.WriteString(fmt.Sprintf("Interviews:     %d (%.1f%% of applications, %d upcoming)\n",
		f.TotalInterviews, f.InterviewConversion, f.UpcomingInterviews))
	sb.WriteString(fmt.Sprintf("Offers:         %d (%.1f%%)\n", f.TotalOffers, f.OfferConversion))
	sb.WriteString(fmt.Sprintf("Interview wins: %.1f%%\n", f.InterviewSuccessRate))
	sb.WriteString(fmt.Sprintf("Weekly cadence: %.1f applications/week", weeklyCadence))

	p.printBox("APPLICATION FUNNEL", sb.String())
}

// PrintTiming outputs average stage durations and tracked activity.
func (p *Printer) PrintTiming(avg types.AverageTimes, activity types.ActivitySummary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("To response:  %s\n", days(avg.AvgTimeToResponse, avg.ResponseSamples)))
	sb.WriteString(fmt.Sprintf("To interview: %s\n", days(avg.AvgTimeToInterview, avg.InterviewSamples)))
	sb.WriteString(fmt.Sprintf("To offer:     %s\n", days(avg.AvgTimeToOffer, avg.OfferSamples)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Tracked time: %.1fh over %d entries", activity.TotalHours, activity.Entries))
	if activity.OpenEntries > 0 {
		sb.WriteString(fmt.Sprintf(" (%d open)", activity.OpenEntries))
	}

	count := min(len(activity.ByActivity), maxItemsToShow)
	for i := 0; i < count; i++ {
		a := activity.ByActivity[i]
		sb.WriteString(fmt.Sprintf("\n  • %s: %.1fh", a.ActivityType, a.Hours))
	}
	if len(activity.ByActivity) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n  ... and %d more", len(activity.ByActivity)-maxItemsToShow))
	}

	p.printBox("TIMING", sb.String())
}

func days(avg float64, samples int) string {
	if samples == 0 {
		return "no data"
	}
	return fmt.Sprintf("%.1f days (n=%d)", avg, samples)
}

// PrintCorrelations outputs preparation and prediction correlations.
func (p *Printer) PrintCorrelations(c types.Correlations) {
	var sb strings.Builder
	writePrep := func(label string, pc types.PrepCorrelation) {
		sb.WriteString(fmt.Sprintf("%s (%dd): %.1f%% with (n=%d) vs %.1f%% without (n=%d)\n",
			label, pc.LookbackDays, pc.SuccessRateWithPrep, pc.WithPrep,
			pc.SuccessRateWithoutPrep, pc.WithoutPrep))
	}
	writePrep("Prep", c.Prep)
	writePrep("Mock", c.Mock)
	sb.WriteString(fmt.Sprintf("Research: %.1f%% with (n=%d) vs %.1f%% without (n=%d)\n",
		c.Research.SuccessRateWithResearch, c.Research.Researched,
		c.Research.SuccessRateWithoutResearch, c.Research.NotResearched))

	if c.Predictions.Samples > 0 {
		sb.WriteString(fmt.Sprintf("Predictions: %.1f%% predicted vs %.1f%% actual (n=%d)",
			c.Predictions.AvgPredicted, c.Predictions.ActualSuccessRate, c.Predictions.Samples))
	} else {
		sb.WriteString("Predictions: no resolved predictions")
	}

	count := min(len(c.InterviewType), maxItemsToShow)
	if count > 0 {
		sb.WriteString("\n\nBy interview type:")
	}
	for i := 0; i < count; i++ {
		it := c.InterviewType[i]
		sb.WriteString(fmt.Sprintf("\n  • %s: %.1f%% (%d/%d)", it.InterviewType, it.SuccessRate, it.Successful, it.Completed))
	}

	p.printBox("CORRELATIONS", sb.String())
}

// PrintPatterns outputs the best-performing buckets per dimension.
func (p *Printer) PrintPatterns(pt types.Patterns) {
	var sb strings.Builder
	rankings := []types.BucketRanking{pt.DayOfWeek, pt.Industry, pt.CompanySize}
	for i, br := range rankings {
		sb.WriteString(fmt.Sprintf("%s:\n", br.Dimension))
		if len(br.Ranked) == 0 {
			sb.WriteString(fmt.Sprintf("  not enough data (min %d per bucket)\n", br.MinSampleSize))
		}
		count := min(len(br.Ranked), 3)
		for j := 0; j < count; j++ {
			b := br.Ranked[j]
			sb.WriteString(fmt.Sprintf("  %d. %s: %.1f%% (%d/%d)\n", j+1, b.Key, b.SuccessRate, b.Successes, b.Count))
		}
		if len(br.Insufficient) > 0 {
			sb.WriteString(fmt.Sprintf("  (%d buckets below sample size)\n", len(br.Insufficient)))
		}
		if i < len(rankings)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("PATTERNS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintForecast outputs the milestone forecast.
func (p *Printer) PrintForecast(f types.Forecast) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Activity multiplier: %.2f\n\n", f.ActivityMultiplier))
	for _, st := range f.Stages {
		marker := ""
		if st.UsedDefault {
			marker = " *"
		}
		sb.WriteString(fmt.Sprintf("%-10s %3d days  %s  %d%%%s\n",
			st.Name, st.EstimatedDays, st.CompletionDate.Format(time.DateOnly), st.Confidence, marker))
	}
	sb.WriteString(fmt.Sprintf("\nOverall confidence: %d%%", f.OverallConfidence))
	for _, st := range f.Stages {
		if st.UsedDefault {
			sb.WriteString("\n* no history, default estimate")
			break
		}
	}

	p.printBox("FORECAST", sb.String())
}

// PrintScenarios outputs the strategy comparison.
func (p *Printer) PrintScenarios(scenarios []types.Scenario) {
	if len(scenarios) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-18s %6s %6s %7s %5s\n", "Strategy", "apps/w", "days", "offers", "conf"))
	for _, sc := range scenarios {
		sb.WriteString(fmt.Sprintf("%-18s %6.1f %6d %7d %4d%%\n",
			truncate(sc.Name, 18), sc.ApplicationsPerWeek, sc.EstimatedDays, sc.EstimatedOffers, sc.Confidence))
	}

	p.printBox("SCENARIOS (90-day horizon)", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs recommendations in priority order.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		return
	}

	var sb strings.Builder
	for i, r := range recs {
		sb.WriteString(fmt.Sprintf("[%s] %s\n", strings.ToUpper(string(r.Priority)), r.Title))
		for _, line := range wrap(r.Description, boxWidth-6) {
			sb.WriteString(fmt.Sprintf("  %s\n", line))
		}
		if r.Metric != "" {
			sb.WriteString(fmt.Sprintf("  → %s\n", r.Metric))
		}
		if i < len(recs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkipped outputs skipped record counts. Nothing is printed when no
// record was skipped.
func (p *Printer) PrintSkipped(s types.SkippedCounts) {
	if s.Applications+s.Interviews+s.TimeEntries+s.Predictions == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Applications: %d\n", s.Applications))
	sb.WriteString(fmt.Sprintf("Interviews:   %d\n", s.Interviews))
	sb.WriteString(fmt.Sprintf("Time entries: %d\n", s.TimeEntries))
	sb.WriteString(fmt.Sprintf("Predictions:  %d", s.Predictions))

	p.printBox("SKIPPED RECORDS", sb.String())
}

// wrap splits text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var (
		lines []string
		line  strings.Builder
	)
	for _, w := range words {
		if line.Len() > 0 && utf8.RuneCountInString(line.String())+1+utf8.RuneCountInString(w) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(w)
	}
	return append(lines, line.String())
}
