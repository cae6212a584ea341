package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lfc-estoque/internal/application/dto"
	"github.com/jhoicas/lfc-estoque/internal/application/usecase"
	"github.com/jhoicas/lfc-estoque/pkg/logger"
)

// ShelfHandler maneja las peticiones HTTP para estanterías (protegido).
type ShelfHandler struct {
	uc  *usecase.ShelfUseCase
	log *logger.Logger
}

// NewShelfHandler construye el handler.
func NewShelfHandler(uc *usecase.ShelfUseCase, log *logger.Logger) *ShelfHandler {
	return &ShelfHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear estantería
// @Tags         shelves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShelfRequest  true  "Nombre de la estantería"
// @Success      201   {object}  dto.ShelfResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shelves [post]
func (h *ShelfHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShelfRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener estantería por ID
// @Tags         shelves
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la estantería"
// @Success      200  {object}  dto.ShelfResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelves/{id} [get]
func (h *ShelfHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar estanterías con sus productos
// @Tags         shelves
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Nombre contiene"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.ShelfListResponse
// @Router       /api/shelves [get]
func (h *ShelfHandler) List(c *fiber.Ctx) error {
	var in dto.ShelfSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de búsqueda inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar estantería
// @Tags         shelves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la estantería"
// @Param        body  body  dto.UpdateShelfRequest  true  "Nuevo nombre"
// @Success      200   {object}  dto.ShelfResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shelves/{id} [put]
func (h *ShelfHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateShelfRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar estantería
// @Description  Falla con 409 SHELF_IN_USE si todavía tiene vínculos de stock.
// @Tags         shelves
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la estantería"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shelves/{id} [delete]
func (h *ShelfHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Estantería eliminada"})
}
