// Package adapter provides the database adapter contract for sqlserde.
//
// Adapters own the connection to a storage backend. Every statement they
// run passes its arguments through the configured plugin, and every row
// they return is deserialized by it, so callers work with booleans, times
// and structured values even though the backend only stores text,
// numbers and blobs.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories
// and register themselves from init().
package adapter

import (
	"context"
	"errors"

	"github.com/leapstack-labs/sqlserde/pkg/plugin"
)

// ErrNotConnected is returned when an operation runs before Connect.
var ErrNotConnected = errors.New("database connection not established")

// Config holds the configuration for connecting to a database.
type Config struct {
	// Type selects the registered adapter (e.g., "sqlite").
	Type string

	// Path is the file path for file-based databases.
	// Use ":memory:" for an in-memory database.
	Path string

	// Options contains additional driver-specific string options.
	Options map[string]string

	// Params contains adapter-specific structured settings, decoded by the
	// adapter itself.
	Params map[string]any

	// Plugin transforms arguments and results. Nil disables transformation.
	Plugin *plugin.Plugin
}

// Column represents a column in a database table.
type Column struct {
	Name       string
	Type       string
	Nullable   bool
	PrimaryKey bool
	Default    string
	Position   int
}

// Metadata holds metadata about a database table.
type Metadata struct {
	Schema   string
	Name     string
	Columns  []Column
	RowCount int64
}

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a statement that doesn't return rows and reports the
	// number of rows affected. Arguments are serialized by the plugin.
	Exec(ctx context.Context, query string, args ...any) (int64, error)

	// Query executes a statement that returns rows. Arguments are
	// serialized and row values deserialized by the plugin.
	Query(ctx context.Context, query string, args ...any) (*Rows, error)

	// GetTableMetadata retrieves metadata for a specified table.
	GetTableMetadata(ctx context.Context, table string) (*Metadata, error)

	// ListTables returns the user tables and views in the database.
	ListTables(ctx context.Context) ([]string, error)

	// LoadCSV loads data from a CSV file into a table.
	// If the table doesn't exist, it will be created with TEXT columns.
	LoadCSV(ctx context.Context, tableName string, filePath string) error

	// DialectName returns the SQL dialect name for this adapter.
	DialectName() string
}
