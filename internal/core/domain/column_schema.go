package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ColumnRole tells the encoder how a column is filled.
type ColumnRole string

const (
	RoleLocation ColumnRole = "location"
	RoleNumeric  ColumnRole = "numeric"
)

// Reserved numeric column names agreed with the trained model.
const (
	ColumnTotalSqft = "total_sqft"
	ColumnBath      = "bath"
	ColumnBHK       = "bhk"
	ColumnBalcony   = "balcony"
)

var reservedNumericColumns = []string{ColumnTotalSqft, ColumnBath, ColumnBHK, ColumnBalcony}

// IsReservedNumeric reports whether name is one of the four numeric feature columns.
// The comparison is exact.
func IsReservedNumeric(name string) bool {
	for _, reserved := range reservedNumericColumns {
		if name == reserved {
			return true
		}
	}
	return false
}

// Column is a single named slot of the feature vector.
type Column struct {
	Name string
	Role ColumnRole
}

// ColumnsFromNames classifies a plain column list: the reserved names are numeric,
// every other entry is a location.
func ColumnsFromNames(names []string) []Column {
	columns := make([]Column, 0, len(names))
	for _, name := range names {
		role := RoleLocation
		if IsReservedNumeric(name) {
			role = RoleNumeric
		}
		columns = append(columns, Column{Name: name, Role: role})
	}
	return columns
}

// NormalizeLocation is the case-folding applied to location names on both sides of a lookup.
func NormalizeLocation(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ColumnSchema is the immutable, ordered column list the model was trained on.
// It is safe for concurrent reads.
type ColumnSchema struct {
	columns       []Column
	numericIndex  map[string]int
	locationIndex map[string]int
	locations     []string
}

// NewColumnSchema validates the columns and precomputes the name to index maps.
// Every validation failure wraps ErrSchemaLoad.
func NewColumnSchema(columns []Column) (*ColumnSchema, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: column list is empty", ErrSchemaLoad)
	}

	s := &ColumnSchema{
		columns:       make([]Column, len(columns)),
		numericIndex:  make(map[string]int, len(reservedNumericColumns)),
		locationIndex: make(map[string]int, len(columns)),
	}

	for i, col := range columns {
		switch col.Role {
		case RoleNumeric:
			if !IsReservedNumeric(col.Name) {
				return nil, fmt.Errorf("%w: column %d %q is tagged numeric but is not one of %v", ErrSchemaLoad, i, col.Name, reservedNumericColumns)
			}
			if _, dup := s.numericIndex[col.Name]; dup {
				return nil, fmt.Errorf("%w: duplicate column %q", ErrSchemaLoad, col.Name)
			}
			s.numericIndex[col.Name] = i
		case RoleLocation:
			name := NormalizeLocation(col.Name)
			if name == "" {
				return nil, fmt.Errorf("%w: column %d has an empty name", ErrSchemaLoad, i)
			}
			if IsReservedNumeric(name) {
				return nil, fmt.Errorf("%w: column %d %q uses a reserved numeric name as a location", ErrSchemaLoad, i, col.Name)
			}
			if _, dup := s.locationIndex[name]; dup {
				return nil, fmt.Errorf("%w: duplicate location %q", ErrSchemaLoad, name)
			}
			s.locationIndex[name] = i
			col.Name = name
			s.locations = append(s.locations, name)
		default:
			return nil, fmt.Errorf("%w: column %d %q has unknown role %q", ErrSchemaLoad, i, col.Name, col.Role)
		}
		s.columns[i] = col
	}

	for _, reserved := range reservedNumericColumns {
		if _, ok := s.numericIndex[reserved]; !ok {
			return nil, fmt.Errorf("%w: required numeric column %q is missing", ErrSchemaLoad, reserved)
		}
	}
	if len(s.locations) == 0 {
		return nil, fmt.Errorf("%w: schema has no location columns", ErrSchemaLoad)
	}

	sort.Strings(s.locations)
	return s, nil
}

// Len is the size of every feature vector built against this schema.
func (s *ColumnSchema) Len() int {
	return len(s.columns)
}

// Columns returns a copy of the ordered columns.
func (s *ColumnSchema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Names returns the ordered column names as stored (locations lower-cased).
func (s *ColumnSchema) Names() []string {
	out := make([]string, len(s.columns))
	for i, col := range s.columns {
		out[i] = col.Name
	}
	return out
}

// Locations returns every location column, sorted alphabetically.
func (s *ColumnSchema) Locations() []string {
	out := make([]string, len(s.locations))
	copy(out, s.locations)
	return out
}

// IndexOf returns the position of name. Reserved numeric names match exactly,
// locations match case-insensitively.
func (s *ColumnSchema) IndexOf(name string) (int, error) {
	if idx, ok := s.numericIndex[name]; ok {
		return idx, nil
	}
	if idx, ok := s.locationIndex[NormalizeLocation(name)]; ok {
		return idx, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// RoleAt returns the role of the column at idx.
func (s *ColumnSchema) RoleAt(idx int) ColumnRole {
	return s.columns[idx].Role
}
