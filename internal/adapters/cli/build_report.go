package cli

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

type BuildStep struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Success   bool
	Error     string
}

type Colors interface {
	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
}

type BuildError struct {
	Page    string
	Message string
	Details []string
}

// BuildReport collects steps, warnings and errors of one export. Warnings and
// errors may be added from concurrent page workers.
type BuildReport struct {
	colors      Colors
	w           io.Writer
	mu          sync.Mutex
	steps       []*BuildStep
	warnings    []BuildError
	errors      []BuildError
	startTime   time.Time
	pageCount   int
	exported    int
	outputDir   string
	hasFailures bool
}

func NewBuildReport(colors Colors, w io.Writer, outputDir string) *BuildReport {
	return &BuildReport{
		colors:    colors,
		w:         w,
		startTime: time.Now(),
		outputDir: outputDir,
	}
}

func (r *BuildReport) SetPageCount(count int) {
	r.mu.Lock()
	r.pageCount = count
	r.mu.Unlock()
}

func (r *BuildReport) PageExported() {
	r.mu.Lock()
	r.exported++
	r.mu.Unlock()
}

func (r *BuildReport) StartStep(name string) *BuildStep {
	step := &BuildStep{
		Name:      name,
		StartTime: time.Now(),
	}
	r.mu.Lock()
	r.steps = append(r.steps, step)
	r.mu.Unlock()
	return step
}

func (r *BuildReport) EndStep(step *BuildStep, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	step.EndTime = time.Now()
	step.Success = err == nil
	if err != nil {
		step.Error = err.Error()
		r.hasFailures = true
	}
}

func (r *BuildReport) AddWarning(page string, message string, details ...string) {
	r.mu.Lock()
	r.warnings = append(r.warnings, BuildError{Page: page, Message: message, Details: details})
	r.mu.Unlock()
}

func (r *BuildReport) AddError(page string, message string, details ...string) {
	r.mu.Lock()
	r.errors = append(r.errors, BuildError{Page: page, Message: message, Details: details})
	r.hasFailures = true
	r.mu.Unlock()
}

func (r *BuildReport) Warnings() []BuildError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]BuildError(nil), r.warnings...)
}

func (r *BuildReport) Errors() []BuildError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]BuildError(nil), r.errors...)
}

func (r *BuildReport) HasFailures() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasFailures
}

func (r *BuildReport) Render() {
	r.mu.Lock()
	defer r.mu.Unlock()

	duration := time.Since(r.startTime)
	if len(r.errors) == 0 && len(r.warnings) == 0 && !r.hasFailures {
		r.renderMinimal(duration)
	} else {
		r.renderVerbose(duration)
	}
}

func (r *BuildReport) renderMinimal(duration time.Duration) {
	fmt.Fprintf(r.w, "  "+r.colors.Green("✓ ")+"%d products found, %d pages exported\n", r.pageCount, r.exported)
	fmt.Fprintf(r.w, "  "+r.colors.Green("✓ ")+"Build complete in %s\n", formatDuration(duration))
	r.renderOutputDir()
}

func (r *BuildReport) renderVerbose(duration time.Duration) {
	fmt.Fprintf(r.w, "  %d products found, %d pages exported\n", r.pageCount, r.exported)

	fmt.Fprintln(r.w)
	for _, step := range r.steps {
		status := r.colors.Green("✓")
		if !step.Success {
			status = r.colors.Red("✗")
		}
		fmt.Fprintf(r.w, "  %s %s\n", status, step.Name)
	}

	if len(r.errors) > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintf(r.w, "  "+r.colors.Red("✗ ")+"Errors (%d):\n", len(r.errors))
		r.renderErrors(r.errors)
	}

	if len(r.warnings) > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintf(r.w, "  "+r.colors.Yellow("⚠ ")+"Warnings (%d):\n", len(r.warnings))
		r.renderErrors(r.warnings)
	}

	fmt.Fprintln(r.w)
	if r.hasFailures {
		fmt.Fprintf(r.w, "  %s\n", r.colors.Red(fmt.Sprintf("Build failed after %s", formatDuration(duration))))
	} else {
		fmt.Fprintf(r.w, "  "+r.colors.Green("✓ ")+"Build complete in %s\n", formatDuration(duration))
	}
	r.renderOutputDir()
}

func (r *BuildReport) renderOutputDir() {
	if r.outputDir != "" {
		fmt.Fprintf(r.w, "\n  %s\n", r.colors.Gray("Output: "+r.outputDir))
	}
}

func (r *BuildReport) renderErrors(errors []BuildError) {
	for _, err := range errors {
		fmt.Fprintf(r.w, "  %s %s\n", r.colors.Red("✗"), err.Page)
		fmt.Fprintf(r.w, "    %s\n", err.Message)

		for _, detail := range deduplicateStrings(err.Details) {
			fmt.Fprintf(r.w, "      • %s\n", detail)
		}
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.1fs", float64(d)/float64(time.Second))
}

func deduplicateStrings(items []string) []string {
	if len(items) <= 1 {
		return items
	}

	seen := make(map[string]int)
	var order []string
	for _, item := range items {
		if seen[item] == 0 {
			order = append(order, item)
		}
		seen[item]++
	}

	result := make([]string, 0, len(order))
	for _, item := range order {
		if count := seen[item]; count > 1 {
			result = append(result, fmt.Sprintf("%s (%d occurrences)", item, count))
		} else {
			result = append(result, item)
		}
	}
	sort.Strings(result)
	return result
}
