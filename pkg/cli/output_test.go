package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

type gameRows []struct {
	ID   string
	Name string
}

func (g gameRows) Table() Table {
	t := Table{Headers: []string{"ID", "NAME"}}
	for _, r := range g {
		t.Rows = append(t.Rows, []string{r.ID, r.Name})
	}
	return t
}

func TestTextFormatter(t *testing.T) {
	formatter := &TextFormatter{}

	output, err := formatter.Format("test message")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if string(output) != "test message\n" {
		t.Errorf("Format() = %q, want %q", string(output), "test message\n")
	}
}

func TestTextFormatter_Table(t *testing.T) {
	rows := gameRows{
		{ID: "7", Name: "Celeste"},
		{ID: "1942", Name: "The Witcher 3"},
	}

	buf := &bytes.Buffer{}
	if err := (&TextFormatter{}).FormatTo(buf, rows); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	want := "ID    NAME\n" +
		"7     Celeste\n" +
		"1942  The Witcher 3\n"
	if buf.String() != want {
		t.Errorf("FormatTo() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestJSONFormatter(t *testing.T) {
	tests := []struct {
		name   string
		data   any
		indent bool
	}{
		{name: "simple string", data: "test"},
		{name: "map with indent", data: map[string]string{"key": "value"}, indent: true},
		{name: "struct", data: struct {
			Name string `json:"name"`
		}{Name: "Celeste"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &JSONFormatter{Indent: tt.indent}
			output, err := formatter.Format(tt.data)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			var v any
			if err := json.Unmarshal(output, &v); err != nil {
				t.Errorf("Format() produced invalid JSON: %v", err)
			}
			if tt.indent != strings.Contains(string(output), "\n") {
				t.Errorf("indent = %v but output %q", tt.indent, output)
			}
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{in: "", want: FormatAuto},
		{in: "text", want: FormatText},
		{in: "JSON", want: FormatJSON},
		{in: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFormat(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if tt.wantErr && ExitCode(err) != ExitConfigError {
				t.Errorf("expected a config error, got %v", err)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	buf := &bytes.Buffer{}

	if _, ok := NewFormatter(FormatText, buf).(*TextFormatter); !ok {
		t.Error("FormatText should give a TextFormatter")
	}
	if _, ok := NewFormatter(FormatJSON, buf).(*JSONFormatter); !ok {
		t.Error("FormatJSON should give a JSONFormatter")
	}
	// a buffer is never a terminal
	if _, ok := NewFormatter(FormatAuto, buf).(*JSONFormatter); !ok {
		t.Error("FormatAuto on a non-terminal should give JSON")
	}
}

func TestAgo(t *testing.T) {
	if got := Ago(time.Time{}); got != "-" {
		t.Errorf("Ago(zero) = %q, want -", got)
	}
	if got := Ago(time.Now().Add(-3 * time.Hour)); got != "3 hours ago" {
		t.Errorf("Ago(-3h) = %q, want 3 hours ago", got)
	}
}

func TestCount(t *testing.T) {
	if got := Count(1234567); got != "1,234,567" {
		t.Errorf("Count() = %q", got)
	}
}
