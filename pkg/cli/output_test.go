package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

type testTable struct{}

func (testTable) Header() []string { return []string{"id", "passed", "errors"} }

func (testTable) Rows() [][]string {
	return [][]string{
		{"run-1", "true", ""},
		{"run-2", "false", "Missing required field: period; period must be one of: day, week, month"},
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		allowed []OutputFormat
		want    OutputFormat
		wantErr bool
	}{
		{"text", []OutputFormat{FormatText, FormatJSON}, FormatText, false},
		{" JSON ", []OutputFormat{FormatText, FormatJSON}, FormatJSON, false},
		{"csv", []OutputFormat{FormatText, FormatJSON}, "", true},
		{"csv", []OutputFormat{FormatText, FormatJSON, FormatCSV}, FormatCSV, false},
		{"", []OutputFormat{FormatText}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in, tt.allowed...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}

			var cfgErr *ConfigError
			if err != nil && !errors.As(err, &cfgErr) {
				t.Errorf("error type = %T, want *ConfigError", err)
			}
		})
	}
}

func TestTextFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := NewFormatter(FormatText).FormatTo(buf, "Mandate OK: /ws/.usdc-mandate.json"); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	expected := "Mandate OK: /ws/.usdc-mandate.json\n"
	if buf.String() != expected {
		t.Errorf("FormatTo() = %q, want %q", buf.String(), expected)
	}
}

func TestJSONFormatter(t *testing.T) {
	data := struct {
		Passed bool     `json:"passed"`
		Errors []string `json:"errors"`
	}{Passed: false, Errors: []string{"Ledger must be a JSON array"}}

	buf := &bytes.Buffer{}
	if err := NewFormatter(FormatJSON).FormatTo(buf, data); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded["passed"] != false {
		t.Errorf("passed = %v, want false", decoded["passed"])
	}
	if !bytes.Contains(buf.Bytes(), []byte("\n  \"errors\"")) {
		t.Errorf("expected indented output, got %s", buf.String())
	}
}

func TestCSVFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := NewFormatter(FormatCSV).FormatTo(buf, testTable{}); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	expected := "id,passed,errors\n" +
		"run-1,true,\n" +
		"run-2,false,\"Missing required field: period; period must be one of: day, week, month\"\n"
	if buf.String() != expected {
		t.Errorf("FormatTo() =\n%s\nwant\n%s", buf.String(), expected)
	}
}

func TestCSVFormatterRejectsNonTable(t *testing.T) {
	if err := NewFormatter(FormatCSV).FormatTo(&bytes.Buffer{}, "plain"); err == nil {
		t.Error("FormatTo() error = nil, want error for non-table data")
	}
}
