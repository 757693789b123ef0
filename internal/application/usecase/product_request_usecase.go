package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/emart-api/internal/application/dto"
	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

// ProductRequestUseCase solicitudes de productos nuevos hechas por residentes.
type ProductRequestUseCase struct {
	repo repository.ProductRequestRepository
	ids  IDGenerator
	now  func() time.Time
}

func NewProductRequestUseCase(repo repository.ProductRequestRepository, ids IDGenerator) *ProductRequestUseCase {
	return &ProductRequestUseCase{repo: repo, ids: ids, now: func() time.Time { return time.Now().UTC() }}
}

func (uc *ProductRequestUseCase) Create(ctx context.Context, in dto.CreateProductRequestRequest) (*dto.ProductRequestResponse, error) {
	if strings.TrimSpace(in.UserID) == "" || strings.TrimSpace(in.ProductName) == "" {
		return nil, fmt.Errorf("%w: user_id y product_name son obligatorios", domain.ErrInvalidInput)
	}
	id, err := uc.ids.NextID(ctx, entity.EntityProductRequest)
	if err != nil {
		return nil, err
	}
	req := &entity.ProductRequest{
		ID:                 id,
		UserID:             strings.TrimSpace(in.UserID),
		ProductName:        strings.TrimSpace(in.ProductName),
		ProductDescription: in.ProductDescription,
		CreatedAt:          uc.now(),
	}
	if err := uc.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create product request: %w", err)
	}
	return dto.FromProductRequest(req), nil
}

func (uc *ProductRequestUseCase) GetByID(ctx context.Context, id string) (*dto.ProductRequestResponse, error) {
	req, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product request: %w", err)
	}
	if req == nil {
		return nil, fmt.Errorf("%w: solicitud %s", domain.ErrNotFound, id)
	}
	return dto.FromProductRequest(req), nil
}

func (uc *ProductRequestUseCase) List(ctx context.Context) ([]dto.ProductRequestResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list product requests: %w", err)
	}
	return toProductRequestResponses(list), nil
}

func (uc *ProductRequestUseCase) ListByUser(ctx context.Context, userID string) ([]dto.ProductRequestResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list product requests by user: %w", err)
	}
	return toProductRequestResponses(list), nil
}

func (uc *ProductRequestUseCase) ListBetween(ctx context.Context, from, to time.Time) ([]dto.ProductRequestResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}
	list, err := uc.repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list product requests between: %w", err)
	}
	return toProductRequestResponses(list), nil
}

func (uc *ProductRequestUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product request: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: solicitud %s", domain.ErrNotFound, id)
	}
	return nil
}

func toProductRequestResponses(list []*entity.ProductRequest) []dto.ProductRequestResponse {
	out := make([]dto.ProductRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *dto.FromProductRequest(r))
	}
	return out
}
