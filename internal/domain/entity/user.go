package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role rol de un usuario en el marketplace.
type Role string

// Roles válidos para User.
const (
	RoleResident Role = "RESIDENT"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole convierte un string (sin distinguir mayúsculas) en Role.
func ParseRole(s string) (Role, error) {
	return parseEnum("role", s, RoleResident, RoleAdmin)
}

// UserStatus estado de la cuenta.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"    // residente activo
	UserStatusInactive  UserStatus = "INACTIVE"  // inactivo temporal
	UserStatusSuspended UserStatus = "SUSPENDED" // suspendido del uso de la app
	UserStatusArchived  UserStatus = "ARCHIVED"  // inactivo de largo plazo, datos retenidos para auditoría
)

// ParseUserStatus convierte un string en UserStatus.
func ParseUserStatus(s string) (UserStatus, error) {
	return parseEnum("user status", s, UserStatusActive, UserStatusInactive, UserStatusSuspended, UserStatusArchived)
}

// User representa a un residente o administrador.
// VoucherBalance solo se modifica a través del ledger (credit/debit); nunca es negativo.
type User struct {
	ID             string
	Name           string
	Role           Role
	VoucherBalance decimal.Decimal
	Status         UserStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanReceiveCredit indica si la cuenta acepta abonos. Las cuentas archivadas quedan congeladas.
func (u *User) CanReceiveCredit() bool {
	return u.Status != UserStatusArchived
}
