package adapter

import (
	"database/sql"

	"github.com/leapstack-labs/sqlserde/pkg/plugin"
)

// Rows wraps sql.Rows and deserializes each row through the plugin.
type Rows struct {
	*sql.Rows
	plugin *plugin.Plugin
}

// NewRows wraps rows. A nil plugin returns raw driver values.
func NewRows(rows *sql.Rows, p *plugin.Plugin) *Rows {
	return &Rows{Rows: rows, plugin: p}
}

// Row scans the current row into a map keyed by column name.
func (r *Rows) Row() (plugin.Row, error) {
	cols, err := r.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := r.Scan(ptrs...); err != nil {
		return nil, err
	}

	return r.plugin.TransformRow(cols, values), nil
}

// ScanStruct scans the current row into the struct pointed to by dest.
// See plugin.DecodeRow for the field matching rules.
func (r *Rows) ScanStruct(dest any) error {
	row, err := r.Row()
	if err != nil {
		return err
	}
	return plugin.DecodeRow(row, dest)
}

// All reads every remaining row and closes the result set.
func (r *Rows) All() ([]plugin.Row, error) {
	defer func() { _ = r.Close() }()

	var out []plugin.Row
	for r.Next() {
		row, err := r.Row()
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
