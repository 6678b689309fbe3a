package services

import (
	"errors"
	"fmt"
	"strings"
)

// Client facing messages.
const (
	MsgMissingFields = "Faltan campos requeridos en la solicitud"
	MsgMediaRequired = "El archivo multimedia es obligatorio"
	MsgServerError   = "Error del servidor"
)

// ValidationError reports required fields that were absent or empty.
type ValidationError struct {
	Missing []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Missing, ", "))
}

// ConflictError means Field (email or username) already belongs to another user.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("El %s ya está registrado", e.Field)
}

// ErrInvalidCredentials is returned for an unknown username and for a wrong
// password alike.
var ErrInvalidCredentials = errors.New("Usuario o contraseña incorrectas, por favor verifique")

type Entity string

const (
	EntityUser    Entity = "user"
	EntityPost    Entity = "post"
	EntityComment Entity = "comment"
)

var notFoundMessages = map[Entity]string{
	EntityUser:    "Usuario no encontrado",
	EntityPost:    "Publicación no encontrada",
	EntityComment: "Comentario no encontrado",
}

// NotFoundError means an id did not resolve to a stored entity.
type NotFoundError struct {
	Entity Entity
}

func (e *NotFoundError) Error() string {
	if m, ok := notFoundMessages[e.Entity]; ok {
		return m
	}
	return string(e.Entity) + " no encontrado"
}

func notFound(entity Entity) error {
	return &NotFoundError{Entity: entity}
}
