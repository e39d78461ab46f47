package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// Sincronización con Handy.
	ErrMissingCredentials   = errors.New("no hay API key de Handy configurada")
	ErrRootItemGroupMissing = errors.New("no existe un grupo de artículos raíz; cree uno primero")
	ErrRemoteUserNotFound   = errors.New("usuario no encontrado en Handy")
	ErrPaginationLoop       = errors.New("la paginación de Handy no termina")
)
