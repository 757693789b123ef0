package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/emart-api/internal/application/purchase"
	"github.com/jhoicas/emart-api/internal/application/tasks"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

// Ensure TxRunner implements purchase.TxRunner and tasks.TxRunner.
var _ purchase.TxRunner = (*TxRunner)(nil)
var _ tasks.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunPurchase inicia una transacción con repos de usuarios, productos y transacciones y hace Commit o Rollback.
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx), NewProductRepository(tx), NewTransactionRepository(tx))
	})
}

// RunTask inicia una transacción con repos de tareas y usuarios (pagos y cambios de participantes).
func (r *TxRunner) RunTask(ctx context.Context, fn func(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewTaskRepository(tx), NewUserRepository(tx))
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storageErr("commit transaction", err)
	}
	return nil
}
