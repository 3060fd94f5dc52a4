package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los adaptadores envuelven estos valores con fmt.Errorf("%w: ...") para dar detalle;
// las capas superiores los comparan con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrStorage      = errors.New("fallo de almacenamiento")
)
