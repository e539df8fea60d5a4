package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/contextkeys"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/contracts"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/port"
)

// columnEntry accepts both a bare column name and a {"name", "role"} object.
type columnEntry struct {
	Name string
	Role domain.ColumnRole
}

func (c *columnEntry) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		c.Name = name
		return nil
	}
	var tagged struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	c.Name = tagged.Name
	c.Role = domain.ColumnRole(tagged.Role)
	return nil
}

type columnsDocument struct {
	Columns []columnEntry `json:"columns"`
}

// SchemaFileLoader reads the model columns artifact from disk.
type SchemaFileLoader struct {
	path string
}

func NewSchemaFileLoader(path string) (*SchemaFileLoader, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: schema path is required", domain.ErrSchemaLoad)
	}
	return &SchemaFileLoader{path: path}, nil
}

func (l *SchemaFileLoader) LoadSchema(ctx context.Context) (*domain.ColumnSchema, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "SchemaFileLoader",
		"path":      l.path,
	})

	body, err := os.ReadFile(l.path)
	if err != nil {
		logger.Error("Failed to read schema artifact", err, nil)
		return nil, fmt.Errorf("%w: %w", domain.ErrSchemaLoad, err)
	}

	schema, err := ParseSchema(body)
	if err != nil {
		logger.Error("Schema artifact rejected", err, nil)
		return nil, err
	}

	logger.Info("Column schema loaded", port.Fields{
		"columns":   schema.Len(),
		"locations": len(schema.Locations()),
	})
	return schema, nil
}

// ParseSchema validates a columns document and builds the schema from it.
// Entries without an explicit role are classified by reserved name.
func ParseSchema(body []byte) (*domain.ColumnSchema, error) {
	if err := contracts.Validate(contracts.ModelColumnsV1, body); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSchemaLoad, err)
	}

	var doc columnsDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSchemaLoad, err)
	}

	columns := make([]domain.Column, 0, len(doc.Columns))
	for _, entry := range doc.Columns {
		if entry.Role == "" {
			columns = append(columns, domain.ColumnsFromNames([]string{entry.Name})...)
			continue
		}
		columns = append(columns, domain.Column{Name: entry.Name, Role: entry.Role})
	}

	return domain.NewColumnSchema(columns)
}
