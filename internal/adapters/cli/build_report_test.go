package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestBuildReportMinimal(t *testing.T) {
	var buf bytes.Buffer
	out := NewWriterOutput(&buf)

	report := NewBuildReport(out, &buf, "out")
	report.SetPageCount(2)
	step := report.StartStep("Rendering product pages")
	report.PageExported()
	report.PageExported()
	report.EndStep(step, nil)
	report.Render()

	got := buf.String()
	if !strings.Contains(got, "2 products found, 2 pages exported") {
		t.Errorf("missing page summary in %q", got)
	}
	if !strings.Contains(got, "Build complete") {
		t.Errorf("missing completion line in %q", got)
	}
	if !strings.Contains(got, "Output: out") {
		t.Errorf("missing output dir in %q", got)
	}
	if report.HasFailures() {
		t.Error("HasFailures() = true, want false")
	}
}

func TestBuildReportVerboseOnFailure(t *testing.T) {
	var buf bytes.Buffer
	out := NewWriterOutput(&buf)

	report := NewBuildReport(out, &buf, "")
	step := report.StartStep("Rendering product pages")
	report.EndStep(step, errors.New("catalog unavailable"))
	report.AddError("/product/t1", "failed to load props", "connection refused", "connection refused")
	report.AddWarning("/product/t2", "product disappeared during build")
	report.Render()

	got := buf.String()
	for _, want := range []string{
		"✗ Rendering product pages",
		"Errors (1):",
		"/product/t1",
		"connection refused (2 occurrences)",
		"Warnings (1):",
		"Build failed after",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report output missing %q:\n%s", want, got)
		}
	}
	if !report.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}
	if len(report.Errors()) != 1 || len(report.Warnings()) != 1 {
		t.Errorf("Errors()=%d Warnings()=%d, want 1 and 1", len(report.Errors()), len(report.Warnings()))
	}
}

func TestOutputColors(t *testing.T) {
	out := &Output{enableColors: true}
	if got := out.Green("ok"); got != "\033[32mok\033[0m" {
		t.Errorf("Green() = %q", got)
	}
	out.DisableColors()
	if got := out.Red("no"); got != "no" {
		t.Errorf("Red() without colors = %q", got)
	}
}
