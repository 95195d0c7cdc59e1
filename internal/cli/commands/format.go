package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/graphrefs/graphrefs"
)

// Formatter renders command output in one of the supported encodings.
type Formatter interface {
	Format(data interface{}) error
}

// GetFormatter maps a --format flag value to its formatter.
func GetFormatter(format string, writer io.Writer) (Formatter, error) {
	if writer == nil {
		writer = os.Stdout
	}
	switch strings.ToLower(format) {
	case "json":
		return NewJSONFormatter(writer), nil
	case "table":
		return NewTableFormatter(writer), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, table)", format)
	}
}

// JSONFormatter renders indented JSON. Every subcommand's --format json
// path runs through it.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a JSON formatter writing to w.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &JSONFormatter{writer: w}
}

// Format encodes data as indented JSON.
func (f *JSONFormatter) Format(data interface{}) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// TableFormatter renders plain uncolored text rows.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a table formatter writing to w.
func NewTableFormatter(w io.Writer) *TableFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &TableFormatter{writer: w}
}

// Format renders data as rows of text.
func (f *TableFormatter) Format(data interface{}) error {
	fmt.Fprintln(f.writer, renderRows(data))
	return nil
}

// renderRows converts the shapes grefs subcommands produce into lines of
// text: reference descriptor maps, dependency sets, and the generic map
// and slice shapes.
func renderRows(data interface{}) string {
	switch v := data.(type) {
	case map[string]graphrefs.RefInfo:
		rows := make([]string, 0, len(v))
		for _, field := range sortedRefFields(v) {
			rows = append(rows, v[field].String())
		}
		return strings.Join(rows, "\n")
	case graphrefs.TypeSet:
		return strings.Join(v.Names(), "\n")
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rows := make([]string, 0, len(v))
		for _, k := range keys {
			rows = append(rows, fmt.Sprintf("%-20s %v", k+":", v[k]))
		}
		return strings.Join(rows, "\n")
	case []interface{}:
		rows := make([]string, 0, len(v))
		for i, item := range v {
			rows = append(rows, fmt.Sprintf("%d. %v", i+1, item))
		}
		return strings.Join(rows, "\n")
	default:
		return fmt.Sprintf("%+v", data)
	}
}
