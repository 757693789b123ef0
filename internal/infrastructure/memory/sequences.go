package memory

import (
	"context"

	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador por tipo de entidad. Usa seqMu y no writeMu,
// así una unidad de trabajo en curso puede pedir IDs sin bloquearse.
type SequenceRepo struct {
	s *Store
}

func (r *SequenceRepo) Next(ctx context.Context, name entity.EntityType) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.seqMu.Lock()
	defer r.s.seqMu.Unlock()
	r.s.sequences[name]++
	return r.s.sequences[name], nil
}
