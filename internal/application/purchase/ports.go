package purchase

import (
	"context"

	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una unidad de trabajo, con repositorios atados a ella.
// Si fn devuelve error no queda ningún cambio aplicado.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error) error
}

// IDGenerator emite el ID de la transacción registrada.
type IDGenerator interface {
	NextID(ctx context.Context, entityType entity.EntityType) (string, error)
}
