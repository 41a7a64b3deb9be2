package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("kv: key not found")

// Store es el contrato mínimo de almacenamiento clave-valor que usa el
// dose tracker. Get devuelve ErrNotFound si la clave no existe.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
