package inventory

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn retorna error se descarta todo lo escrito (Rollback).
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.TxRepos) error) error
}
