package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/emart-api/internal/application/dto"
	"github.com/jhoicas/emart-api/internal/application/tasks"
	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// TaskHandler maneja tareas comunitarias, sus participantes y el pago de recompensas.
type TaskHandler struct {
	uc *tasks.UseCase
}

// NewTaskHandler construye el handler.
func NewTaskHandler(uc *tasks.UseCase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tarea
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTaskRequest  true  "Datos de la tarea"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	t, err := h.uc.Create(c.UserContext(), tasks.CreateInput{
		Name:        in.Name,
		Description: in.Description,
		Reward:      in.Reward,
		Status:      in.Status,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTask(t))
}

// GetByID godoc
// @Summary      Obtener tarea
// @Tags         tasks
// @Produce      json
// @Param        id   path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.TaskResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromTask(t))
}

// List godoc
// @Summary      Listar tareas
// @Tags         tasks
// @Produce      json
// @Param        status  query  string  false  "OPEN | CLOSED"
// @Param        start   query  string  false  "Inicio"
// @Param        end     query  string  false  "Fin"
// @Success      200     {array}  dto.TaskResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var (
		list []*entity.Task
		err  error
	)
	q, hasRange, perr := timeframe(c)
	switch {
	case perr != nil:
		return invalidTimeframe(c)
	case c.Query("status") != "":
		list, err = h.uc.ListByStatus(ctx, c.Query("status"))
	case hasRange:
		from, to, ok := q.ParseTimeframe()
		if !ok {
			return invalidTimeframe(c)
		}
		list, err = h.uc.ListBetween(ctx, from, to)
	default:
		list, err = h.uc.List(ctx)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromTasks(list))
}

// Update godoc
// @Summary      Actualizar tarea
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la tarea"
// @Param        body  body  dto.UpdateTaskRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.TaskResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	t, err := h.uc.Update(c.UserContext(), c.Params("id"), tasks.UpdateInput{
		Name:        in.Name,
		Description: in.Description,
		Reward:      in.Reward,
		Status:      in.Status,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromTask(t))
}

// Delete godoc
// @Summary      Eliminar tarea
// @Tags         tasks
// @Param        id   path  string  true  "ID de la tarea"
// @Success      204
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddContributor godoc
// @Summary      Inscribir participante
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la tarea"
// @Param        body  body  dto.ContributorRequest  true  "user_id"
// @Success      200   {object}  dto.TaskResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tasks/{id}/contributors [post]
func (h *TaskHandler) AddContributor(c *fiber.Ctx) error {
	var in dto.ContributorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	t, err := h.uc.AddContributor(c.UserContext(), c.Params("id"), in.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromTask(t))
}

// RemoveContributor godoc
// @Summary      Retirar participante
// @Tags         tasks
// @Produce      json
// @Param        id       path  string  true  "ID de la tarea"
// @Param        user_id  path  string  true  "ID del usuario"
// @Success      200      {object}  dto.TaskResponse
// @Router       /api/tasks/{id}/contributors/{user_id} [delete]
func (h *TaskHandler) RemoveContributor(c *fiber.Ctx) error {
	t, err := h.uc.RemoveContributor(c.UserContext(), c.Params("id"), c.Params("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromTask(t))
}

// SetContributorStatus godoc
// @Summary      Aprobar o rechazar participante
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "ID de la tarea"
// @Param        user_id  path  string  true  "ID del usuario"
// @Param        body     body  dto.StatusRequest  true  "APPROVED | REJECTED"
// @Success      200      {object}  dto.TaskResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /api/tasks/{id}/contributors/{user_id}/status [patch]
func (h *TaskHandler) SetContributorStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	t, err := h.uc.SetContributorStatus(c.UserContext(), c.Params("id"), c.Params("user_id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromTask(t))
}

// Close godoc
// @Summary      Cerrar tarea
// @Tags         tasks
// @Produce      json
// @Param        id   path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.TaskResponse
// @Router       /api/tasks/{id}/close [post]
func (h *TaskHandler) Close(c *fiber.Ctx) error {
	t, err := h.uc.Close(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromTask(t))
}

// Process godoc
// @Summary      Pagar recompensas
// @Description  Acredita la recompensa a cada participante APPROVED y lo marca PROCESSED. Un fallo individual no detiene al resto.
// @Tags         tasks
// @Produce      json
// @Param        id   path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.TaskResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tasks/{id}/process [post]
func (h *TaskHandler) Process(c *fiber.Ctx) error {
	t, err := h.uc.Process(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromTask(t))
}
