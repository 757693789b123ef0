package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// CreateUserRequest entrada para crear un usuario. ID opcional: si viene del proveedor de identidad se conserva.
type CreateUserRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// UpdateUserRequest campos editables del perfil. El saldo no se modifica por aquí.
type UpdateUserRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
}

// BalanceRequest monto para addBalance / deductBalance.
type BalanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// StatusRequest cambio de estado (usuarios, preórdenes, participantes).
type StatusRequest struct {
	Status string `json:"status"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Role           string          `json:"role"`
	VoucherBalance decimal.Decimal `json:"voucher_balance"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// LeaderboardEntry posición de un residente en el ranking por saldo.
type LeaderboardEntry struct {
	Rank           int             `json:"rank"`
	UserID         string          `json:"user_id"`
	Name           string          `json:"name"`
	VoucherBalance decimal.Decimal `json:"voucher_balance"`
}

// FromUser convierte la entidad en respuesta.
func FromUser(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Role:           string(u.Role),
		VoucherBalance: u.VoucherBalance,
		Status:         string(u.Status),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
