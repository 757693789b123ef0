package usecase

import (
	"context"

	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// IDGenerator emite IDs con prefijo por tipo de entidad.
type IDGenerator interface {
	NextID(ctx context.Context, entityType entity.EntityType) (string, error)
}

// AuditRecorder registra cambios sobre productos. Es fire-and-forget: no devuelve error.
type AuditRecorder interface {
	Record(ctx context.Context, userID, productID, action string)
}
