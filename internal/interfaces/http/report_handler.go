package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/emart-api/internal/application/report"
)

// ReportHandler reportes por periodo en JSON o PDF.
type ReportHandler struct {
	uc *report.UseCase
}

func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Get godoc
// @Summary      Generar reporte por periodo
// @Tags         reports
// @Produce      json
// @Produce      application/pdf
// @Param        type    path   string  true   "transactions | preorders | audit | requests"
// @Param        start   query  string  true   "Inicio (RFC 3339 o YYYY-MM-DD)"
// @Param        end     query  string  true   "Fin (RFC 3339 o YYYY-MM-DD)"
// @Param        format  query  string  false  "json | pdf"  default(json)
// @Success      200     {object}  report.Report
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reports/{type} [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	t, err := report.ParseType(c.Params("type"))
	if err != nil {
		return writeError(c, err)
	}
	q, _, perr := timeframe(c)
	if perr != nil {
		return invalidTimeframe(c)
	}
	from, to, ok := q.ParseTimeframe()
	if !ok {
		return invalidTimeframe(c)
	}
	r, err := h.uc.Build(c.UserContext(), t, from, to)
	if err != nil {
		return writeError(c, err)
	}
	if !strings.EqualFold(c.Query("format"), "pdf") {
		return c.JSON(r)
	}
	pdfBytes, err := h.uc.Render(c.UserContext(), r)
	if err != nil {
		return writeError(c, err)
	}
	filename := fmt.Sprintf("%s_%s_%s.pdf", t, from.Format("20060102"), to.Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
