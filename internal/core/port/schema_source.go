package port

import (
	"context"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
)

// SchemaSourcePort loads the column schema artifact once at startup.
type SchemaSourcePort interface {
	LoadSchema(ctx context.Context) (*domain.ColumnSchema, error)
}
