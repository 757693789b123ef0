package postgres

import (
	"context"

	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador por tipo de entidad en la tabla sequences.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el contador. Conviene pasar el pool: así el ID
// queda asignado aunque la transacción del llamador haga rollback.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next crea el contador en 1 o lo incrementa, en una sola sentencia.
func (r *SequenceRepo) Next(ctx context.Context, name entity.EntityType) (int64, error) {
	query := `
		INSERT INTO sequences (name, seq) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET seq = sequences.seq + 1
		RETURNING seq`
	var seq int64
	if err := r.q.QueryRow(ctx, query, name).Scan(&seq); err != nil {
		return 0, storageErr("next sequence", err)
	}
	return seq, nil
}
