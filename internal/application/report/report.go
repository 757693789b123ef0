// Package report arma los reportes por periodo del panel de administración
// (transacciones, preórdenes, auditoría de productos y solicitudes) y los entrega
// como JSON o, a través de un Renderer, como PDF.
package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

// Type tipo de reporte.
type Type string

const (
	TypeTransactions Type = "transactions"
	TypePreorders    Type = "preorders"
	TypeAudit        Type = "audit"
	TypeRequests     Type = "requests"
)

var titles = map[Type]string{
	TypeTransactions: "Reporte de transacciones",
	TypePreorders:    "Reporte de preórdenes",
	TypeAudit:        "Auditoría de productos",
	TypeRequests:     "Solicitudes de productos",
}

// ParseType convierte el segmento de la URL en Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := titles[t]; !ok {
		return "", fmt.Errorf("%w: tipo de reporte desconocido %q", domain.ErrInvalidInput, s)
	}
	return t, nil
}

// Metadata datos del encabezado del reporte.
type Metadata struct {
	Type        Type      `json:"type"`
	Title       string    `json:"title"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Summary totales del periodo. Los campos que no aplican al tipo quedan en cero y se omiten.
type Summary struct {
	TotalRecords   int             `json:"total_records"`
	UniqueUsers    int             `json:"unique_users"`
	UniqueProducts int             `json:"unique_products,omitempty"`
	TotalQuantity  int64           `json:"total_quantity,omitempty"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	ByStatus       map[string]int  `json:"by_status,omitempty"`
	ByAction       map[string]int  `json:"by_action,omitempty"`
}

// Report tabla lista para mostrar: Columns y cada fila de Rows tienen el mismo largo.
type Report struct {
	Metadata Metadata   `json:"metadata"`
	Columns  []string   `json:"columns"`
	Rows     [][]string `json:"rows"`
	Summary  Summary    `json:"summary"`
}

// Renderer convierte un reporte a un documento (PDF).
type Renderer interface {
	Render(ctx context.Context, r *Report) ([]byte, error)
}

// UseCase construye reportes a partir de los repositorios de solo lectura.
type UseCase struct {
	txRepo       repository.TransactionRepository
	preorderRepo repository.PreorderRepository
	logRepo      repository.ProductLogRepository
	requestRepo  repository.ProductRequestRepository
	renderer     Renderer
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRepo repository.TransactionRepository,
	preorderRepo repository.PreorderRepository,
	logRepo repository.ProductLogRepository,
	requestRepo repository.ProductRequestRepository,
	renderer Renderer,
) *UseCase {
	return &UseCase{
		txRepo:       txRepo,
		preorderRepo: preorderRepo,
		logRepo:      logRepo,
		requestRepo:  requestRepo,
		renderer:     renderer,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Build arma el reporte del tipo dado para el periodo [from, to].
func (uc *UseCase) Build(ctx context.Context, t Type, from, to time.Time) (*Report, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}
	r := &Report{Metadata: Metadata{
		Type:        t,
		Title:       titles[t],
		StartDate:   from,
		EndDate:     to,
		GeneratedAt: uc.now(),
	}}
	var err error
	switch t {
	case TypeTransactions:
		err = uc.transactions(ctx, r)
	case TypePreorders:
		err = uc.preorders(ctx, r)
	case TypeAudit:
		err = uc.audit(ctx, r)
	case TypeRequests:
		err = uc.requests(ctx, r)
	default:
		return nil, fmt.Errorf("%w: tipo de reporte desconocido %q", domain.ErrInvalidInput, t)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s report: %w", t, err)
	}
	r.Summary.TotalRecords = len(r.Rows)
	return r, nil
}

// Render genera el documento del reporte con el Renderer configurado.
func (uc *UseCase) Render(ctx context.Context, r *Report) ([]byte, error) {
	return uc.renderer.Render(ctx, r)
}

func (uc *UseCase) transactions(ctx context.Context, r *Report) error {
	list, err := uc.txRepo.ListBetween(ctx, r.Metadata.StartDate, r.Metadata.EndDate)
	if err != nil {
		return err
	}
	users, products := counter{}, counter{}
	r.Columns = []string{"ID", "Usuario", "Producto", "Cantidad", "Total", "Fecha"}
	r.Rows = make([][]string, 0, len(list))
	for _, t := range list {
		users.add(t.UserID)
		products.add(t.ProductID)
		r.Summary.TotalQuantity += t.Quantity
		r.Summary.TotalAmount = r.Summary.TotalAmount.Add(t.TotalPrice)
		r.Rows = append(r.Rows, []string{
			t.ID, t.UserID, t.ProductID, strconv.FormatInt(t.Quantity, 10), t.TotalPrice.StringFixed(2), stamp(t.CreatedAt),
		})
	}
	r.Summary.UniqueUsers, r.Summary.UniqueProducts = len(users), len(products)
	return nil
}

func (uc *UseCase) preorders(ctx context.Context, r *Report) error {
	list, err := uc.preorderRepo.ListBetween(ctx, r.Metadata.StartDate, r.Metadata.EndDate)
	if err != nil {
		return err
	}
	users, products := counter{}, counter{}
	r.Summary.ByStatus = map[string]int{}
	r.Columns = []string{"ID", "Usuario", "Producto", "Cantidad", "Total", "Estado", "Fecha"}
	r.Rows = make([][]string, 0, len(list))
	for _, p := range list {
		users.add(p.UserID)
		products.add(p.ProductID)
		r.Summary.ByStatus[string(p.Status)]++
		r.Summary.TotalQuantity += p.Quantity
		r.Summary.TotalAmount = r.Summary.TotalAmount.Add(p.TotalPrice)
		r.Rows = append(r.Rows, []string{
			p.ID, p.UserID, p.ProductID, strconv.FormatInt(p.Quantity, 10), p.TotalPrice.StringFixed(2), string(p.Status), stamp(p.CreatedAt),
		})
	}
	r.Summary.UniqueUsers, r.Summary.UniqueProducts = len(users), len(products)
	return nil
}

func (uc *UseCase) audit(ctx context.Context, r *Report) error {
	list, err := uc.logRepo.ListBetween(ctx, r.Metadata.StartDate, r.Metadata.EndDate)
	if err != nil {
		return err
	}
	users, products := counter{}, counter{}
	r.Summary.ByAction = map[string]int{}
	r.Columns = []string{"ID", "Usuario", "Producto", "Acción", "Fecha"}
	r.Rows = make([][]string, 0, len(list))
	for _, l := range list {
		users.add(l.UserID)
		products.add(l.ProductID)
		kind, _, _ := strings.Cut(l.Action, ":")
		r.Summary.ByAction[kind]++
		r.Rows = append(r.Rows, []string{l.ID, l.UserID, l.ProductID, l.Action, stamp(l.CreatedAt)})
	}
	r.Summary.UniqueUsers, r.Summary.UniqueProducts = len(users), len(products)
	return nil
}

func (uc *UseCase) requests(ctx context.Context, r *Report) error {
	list, err := uc.requestRepo.ListBetween(ctx, r.Metadata.StartDate, r.Metadata.EndDate)
	if err != nil {
		return err
	}
	users := counter{}
	r.Columns = []string{"ID", "Usuario", "Producto solicitado", "Descripción", "Fecha"}
	r.Rows = make([][]string, 0, len(list))
	for _, pr := range list {
		users.add(pr.UserID)
		r.Rows = append(r.Rows, []string{pr.ID, pr.UserID, pr.ProductName, pr.ProductDescription, stamp(pr.CreatedAt)})
	}
	r.Summary.UniqueUsers = len(users)
	return nil
}

type counter map[string]struct{}

func (c counter) add(id string) {
	if id != "" {
		c[id] = struct{}{}
	}
}

func stamp(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
