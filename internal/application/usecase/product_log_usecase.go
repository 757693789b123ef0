package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/emart-api/internal/application/dto"
	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

var _ AuditRecorder = (*ProductLogUseCase)(nil)

// ProductLogUseCase registro de auditoría de productos. Implementa AuditRecorder.
type ProductLogUseCase struct {
	repo   repository.ProductLogRepository
	ids    IDGenerator
	logger zerolog.Logger
	now    func() time.Time
}

// NewProductLogUseCase construye el caso de uso.
func NewProductLogUseCase(repo repository.ProductLogRepository, ids IDGenerator, logger zerolog.Logger) *ProductLogUseCase {
	return &ProductLogUseCase{repo: repo, ids: ids, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Record guarda la entrada de auditoría. Un fallo se registra en el log y no afecta a quien llama.
func (uc *ProductLogUseCase) Record(ctx context.Context, userID, productID, action string) {
	id, err := uc.ids.NextID(ctx, entity.EntityProductLog)
	if err == nil {
		err = uc.repo.Create(ctx, &entity.ProductLog{
			ID:        id,
			UserID:    userID,
			ProductID: productID,
			Action:    action,
			CreatedAt: uc.now(),
		})
	}
	if err != nil {
		uc.logger.Error().Err(err).
			Str("user_id", userID).
			Str("product_id", productID).
			Str("action", action).
			Msg("no se pudo registrar la auditoría de producto")
	}
}

func (uc *ProductLogUseCase) List(ctx context.Context) ([]dto.ProductLogResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list product logs: %w", err)
	}
	return toProductLogResponses(list), nil
}

func (uc *ProductLogUseCase) ListByProduct(ctx context.Context, productID string) ([]dto.ProductLogResponse, error) {
	list, err := uc.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list product logs by product: %w", err)
	}
	return toProductLogResponses(list), nil
}

func (uc *ProductLogUseCase) ListBetween(ctx context.Context, from, to time.Time) ([]dto.ProductLogResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}
	list, err := uc.repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list product logs between: %w", err)
	}
	return toProductLogResponses(list), nil
}

func toProductLogResponses(list []*entity.ProductLog) []dto.ProductLogResponse {
	out := make([]dto.ProductLogResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *dto.FromProductLog(l))
	}
	return out
}
