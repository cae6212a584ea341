package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lfc-estoque/internal/application/dto"
	"github.com/jhoicas/lfc-estoque/internal/domain"
	"github.com/jhoicas/lfc-estoque/pkg/logger"
)

type errorMapping struct {
	status  int
	code    string
	message string
}

// errorTable traduce los errores de dominio al cuerpo HTTP. El orden importa: ErrInvalidQuantity
// se evalúa antes que ErrInvalidInput para conservar el mensaje específico.
var errorTable = []struct {
	err error
	errorMapping
}{
	{domain.ErrInvalidQuantity, errorMapping{fiber.StatusBadRequest, "VALIDATION", "la cantidad debe ser un entero positivo"}},
	{domain.ErrInvalidInput, errorMapping{fiber.StatusBadRequest, "VALIDATION", "datos inválidos"}},
	{domain.ErrNotFound, errorMapping{fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"}},
	{domain.ErrUserNotFound, errorMapping{fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"}},
	{domain.ErrUnauthorized, errorMapping{fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"}},
	{domain.ErrSessionNotFound, errorMapping{fiber.StatusUnauthorized, "SESSION_EXPIRED", "sesión expirada, inicie sesión de nuevo"}},
	{domain.ErrForbidden, errorMapping{fiber.StatusForbidden, "FORBIDDEN", "cuenta inactiva o suspendida"}},
	{domain.ErrEmailAlreadyExists, errorMapping{fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado"}},
	{domain.ErrDuplicate, errorMapping{fiber.StatusConflict, "DUPLICATE", "ya existe un producto con ese SKU"}},
	{domain.ErrShelfInUse, errorMapping{fiber.StatusConflict, "SHELF_IN_USE", "la estantería todavía tiene productos asignados"}},
	{domain.ErrConflict, errorMapping{fiber.StatusConflict, "CONFLICT", "conflicto con el estado actual"}},
	{domain.ErrInsufficientStock, errorMapping{fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK", "la cantidad supera el stock disponible"}},
}

// writeError responde con el status y código asociados al error. Los errores no mapeados
// se registran y se devuelven como 500 sin exponer el detalle interno.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("request_id", requestID(c)).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
