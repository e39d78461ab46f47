package repository

import (
	"context"

	"github.com/jhoicas/handy-sync/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	// UpsertByHandyCode crea o actualiza el cliente por su código Handy; created indica si se insertó.
	UpsertByHandyCode(ctx context.Context, customer *entity.Customer) (created bool, err error)
}

// CustomerGroupRepository define el puerto para grupos de clientes (get-or-create por nombre).
type CustomerGroupRepository interface {
	Ensure(ctx context.Context, name string) (created bool, err error)
}
