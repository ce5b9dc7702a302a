// Package warehouse provides the target table schemas and the bulk-append
// sink backed by a pgxpool connection.
package warehouse

import (
	"fmt"
	"strings"
)

// ColumnType enumerates the column types the target tables use.
type ColumnType string

const (
	Text      ColumnType = "TEXT"
	Float     ColumnType = "DOUBLE PRECISION"
	Integer   ColumnType = "INTEGER"
	Boolean   ColumnType = "BOOLEAN"
	Timestamp ColumnType = "TIMESTAMP"
	Date      ColumnType = "DATE"
)

// Column is one declared column of a target table.
type Column struct {
	Name string
	Type ColumnType
}

// Schema declares a target table. It is asserted with CREATE TABLE IF NOT
// EXISTS before every load and never altered afterwards; an existing table
// with an incompatible shape is an operator error surfaced by the load.
type Schema struct {
	Table   string
	Columns []Column
}

// Row holds one record's values, positionally aligned with Schema.Columns.
type Row []any

// ColumnNames returns the declared column names in order.
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// DDL renders the idempotent CREATE TABLE statement for this schema.
func (s Schema) DDL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", s.Table)
	for i, c := range s.Columns {
		fmt.Fprintf(&b, "\t%s %s", c.Name, c.Type)
		if i < len(s.Columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")
	return b.String()
}

// Validate reports the first structural problem with a schema, if any.
// Called before DDL is issued so a misdeclared dataset fails loudly.
func (s Schema) Validate() error {
	if s.Table == "" {
		return fmt.Errorf("schema has no table name")
	}
	if len(s.Columns) == 0 {
		return fmt.Errorf("schema %s has no columns", s.Table)
	}
	seen := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		if c.Name == "" {
			return fmt.Errorf("schema %s has an unnamed column", s.Table)
		}
		if seen[c.Name] {
			return fmt.Errorf("schema %s declares column %s twice", s.Table, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}
