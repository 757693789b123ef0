package repository

import (
	"context"

	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// SequenceRepository contador externo por tipo de entidad.
// Next incrementa y devuelve el nuevo valor en una sola operación atómica
// (crea el contador en 0 si no existe, por lo que la primera llamada devuelve 1).
type SequenceRepository interface {
	Next(ctx context.Context, name entity.EntityType) (int64, error)
}
