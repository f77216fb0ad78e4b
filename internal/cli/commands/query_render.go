package commands

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/sqlserde/pkg/adapter"
	"github.com/leapstack-labs/sqlserde/pkg/plugin"
	"github.com/leapstack-labs/sqlserde/pkg/serde"
	"gopkg.in/yaml.v3"
)

// renderRows drains rows and writes them in the requested format.
func renderRows(w io.Writer, rows *adapter.Rows, format string) error {
	cols, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return err
	}
	results, err := rows.All()
	if err != nil {
		return err
	}
	return renderResults(w, cols, results, format)
}

func renderResults(w io.Writer, cols []string, results []plugin.Row, format string) error {
	switch format {
	case "json":
		return renderJSON(w, results)
	case "yaml":
		return renderYAML(w, cols, results)
	case "csv":
		return renderCSV(w, cols, results)
	case "md", "markdown":
		return renderMarkdown(w, cols, results)
	default:
		return renderTable(w, cols, results)
	}
}

func renderTable(w io.Writer, cols []string, results []plugin.Row) error {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(cols))
	for i, col := range cols {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, result := range results {
		row := make(table.Row, len(cols))
		for i, col := range cols {
			row[i] = formatValue(result[col])
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(results))
	return nil
}

func renderJSON(w io.Writer, results []plugin.Row) error {
	if results == nil {
		results = []plugin.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// renderYAML keeps column order, which a plain map would lose.
func renderYAML(w io.Writer, cols []string, results []plugin.Row) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, result := range results {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, col := range cols {
			var val yaml.Node
			if err := val.Encode(yamlValue(result[col])); err != nil {
				return fmt.Errorf("failed to encode column %s: %w", col, err)
			}
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: col}, &val)
		}
		doc.Content = append(doc.Content, m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func yamlValue(v any) any {
	switch x := v.(type) {
	case time.Time:
		return serde.FormatTime(x)
	case []byte:
		return hex.EncodeToString(x)
	default:
		return v
	}
}

func renderCSV(w io.Writer, cols []string, results []plugin.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	for _, result := range results {
		record := make([]string, len(cols))
		for i, col := range cols {
			record[i] = formatValue(result[col])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderMarkdown(w io.Writer, cols []string, results []plugin.Row) error {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cols, " | "))
	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, result := range results {
		values := make([]string, len(cols))
		for i, col := range cols {
			values[i] = strings.ReplaceAll(formatValue(result[col]), "|", `\|`)
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

// formatValue renders one deserialized value for text output. Times use
// the storage format and structured values are shown as JSON.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return x
	case time.Time:
		return serde.FormatTime(x)
	case []byte:
		return "x'" + hex.EncodeToString(x) + "'"
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprintf("%v", x)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func renderSchema(w io.Writer, meta *adapter.Metadata, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}
	if format == "yaml" {
		return yaml.NewEncoder(w).Encode(meta)
	}

	_, _ = fmt.Fprintf(w, "Table: %s.%s (%d rows)\n", meta.Schema, meta.Name, meta.RowCount)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Column", "Type", "Nullable", "Default", "PK"})
	for _, col := range meta.Columns {
		nullable := "YES"
		if !col.Nullable {
			nullable = "NO"
		}
		pk := ""
		if col.PrimaryKey {
			pk = "yes"
		}
		t.AppendRow(table.Row{col.Position, col.Name, col.Type, nullable, col.Default, pk})
	}
	t.Render()
	return nil
}

func renderTableNames(w io.Writer, names []string, format string) error {
	results := make([]plugin.Row, len(names))
	for i, name := range names {
		results[i] = plugin.Row{"name": name}
	}
	return renderResults(w, []string{"name"}, results, format)
}
