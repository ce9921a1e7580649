package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/finance-projection/internal/projection"
	"github.com/iwvelando/finance-projection/pkg/constants"
	"github.com/iwvelando/finance-projection/pkg/finance"
	"github.com/iwvelando/finance-projection/pkg/testutil"
)

func testResults(t *testing.T) []projection.Projection {
	t.Helper()
	inputs := testutil.FullInputs()
	p, err := finance.Compute(inputs)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	return []projection.Projection{
		{Name: "Test Scenario", RunID: "run-1", Inputs: inputs, Projections: p, Warnings: []string{"DSCR below 1.20 in 2026"}},
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, testResults(t)); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"--- Results for scenario Test Scenario ---",
		"Income statement",
		"Detailed income statement",
		"Balance sheet",
		"Working capital",
		"Appraisal",
		"Profitability index",
		"Monthly payment",
		"2026",
		"2030",
		"warning: DSCR below 1.20 in 2026",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat output missing %q", want)
		}
	}

	if strings.Contains(output, "-0.00") {
		t.Errorf("PrettyFormat printed a negative zero")
	}
}

func TestPrettyFormatSeparatesScenarios(t *testing.T) {
	results := testResults(t)
	results = append(results, projection.Projection{Name: "Empty"})

	var buf bytes.Buffer
	if err := PrettyFormat(&buf, results); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	if !strings.Contains(buf.String(), "\n\n--- Results for scenario Empty ---\n") {
		t.Errorf("scenarios should be separated by a blank line")
	}
}

func TestCsvFormat(t *testing.T) {
	results := testResults(t)
	var buf bytes.Buffer
	if err := CsvFormat(&buf, results); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if got := strings.Join(records[0], ","); got != "scenario,statement,line,year,value" {
		t.Errorf("header = %s", got)
	}

	p := results[0].Projections
	var revenue []string
	for _, r := range records[1:] {
		if len(r) != 5 {
			t.Fatalf("record has %d fields: %v", len(r), r)
		}
		if r[1] == "Income statement" && r[2] == "Revenue" {
			revenue = append(revenue, r[3])
		}
	}
	if len(revenue) != p.Horizon() {
		t.Fatalf("expected %d revenue records, got %d", p.Horizon(), len(revenue))
	}
	if revenue[0] != "2026" {
		t.Errorf("first revenue year = %s, expected 2026", revenue[0])
	}
}

func TestJSONFormat(t *testing.T) {
	results := testResults(t)
	var buf bytes.Buffer
	if err := JSONFormat(&buf, results); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded []projection.Projection
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].RunID != "run-1" {
		t.Fatalf("decoded = %+v", decoded)
	}
	if decoded[0].Projections.Horizon() != results[0].Projections.Horizon() {
		t.Errorf("horizon lost in JSON round trip")
	}

	buf.Reset()
	if err := JSONFormat(&buf, nil); err != nil {
		t.Fatalf("JSONFormat(nil) error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("JSONFormat(nil) = %q, expected []", buf.String())
	}
}

func TestWrite(t *testing.T) {
	results := testResults(t)
	tests := []struct {
		format    string
		prefix    string
		wantError bool
	}{
		{constants.OutputFormatPretty, "--- Results", false},
		{"", "--- Results", false},
		{constants.OutputFormatCSV, "scenario,", false},
		{constants.OutputFormatJSON, "[", false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(&buf, tt.format, results)
			if tt.wantError {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if !strings.HasPrefix(buf.String(), tt.prefix) {
				t.Errorf("output starts with %q, expected %q", buf.String()[:min(20, buf.Len())], tt.prefix)
			}
		})
	}
}
