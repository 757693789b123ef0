// Package sequence asigna identificadores legibles y crecientes por tipo de entidad
// (U1, P7, TX42...). El contador vive en el almacenamiento; el Allocator no guarda estado.
package sequence

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

// Allocator emite IDs con prefijo a partir de un SequenceRepository atómico.
type Allocator struct {
	repo repository.SequenceRepository
}

// NewAllocator construye el asignador sobre el contador dado.
func NewAllocator(repo repository.SequenceRepository) *Allocator {
	return &Allocator{repo: repo}
}

// NextID incrementa el contador de entityType y devuelve prefijo + valor.
// Si el contador no responde devuelve ErrStorageUnavailable y nunca inventa un ID.
func (a *Allocator) NextID(ctx context.Context, entityType entity.EntityType) (string, error) {
	prefix, ok := entityType.Prefix()
	if !ok {
		return "", fmt.Errorf("%w: tipo de entidad %q sin prefijo", domain.ErrInvalidInput, entityType)
	}
	n, err := a.repo.Next(ctx, entityType)
	if err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			return "", fmt.Errorf("next id %s: %w", entityType, err)
		}
		return "", fmt.Errorf("next id %s: %w: %w", entityType, domain.ErrStorageUnavailable, err)
	}
	return prefix + strconv.FormatInt(n, 10), nil
}
