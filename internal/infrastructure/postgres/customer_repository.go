package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/jhoicas/handy-sync/internal/domain/repository"
)

var (
	_ repository.CustomerRepository      = (*CustomerRepo)(nil)
	_ repository.CustomerGroupRepository = (*CustomerGroupRepo)(nil)
)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// UpsertByHandyCode crea el cliente o sobrescribe los campos sincronizados.
// customer_type y territory solo se fijan al crear.
func (r *CustomerRepo) UpsertByHandyCode(ctx context.Context, c *entity.Customer) (bool, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	customerType, territory := c.CustomerType, c.Territory
	if customerType == "" {
		customerType = entity.DefaultCustomerType
	}
	if territory == "" {
		territory = entity.DefaultTerritory
	}
	created, err := upsertByKey(ctx, r.q, upsertSpec{
		Table: "customers",
		Keys:  []column{{"handy_code", c.HandyCode}},
		Fields: []column{
			{"customer_name", c.Name},
			{"customer_group", c.CustomerGroup},
			{"phone", c.Phone},
			{"email_id", c.Email},
			{"disabled", c.Disabled},
			{"handy_payment_type", c.HandyPaymentType},
			{"handy_credit_days", c.HandyCreditDays},
			{"latitude", c.Latitude},
			{"longitude", c.Longitude},
			{"zone_id", c.ZoneID},
			{"zone_name", c.ZoneName},
		},
		OnInsert: []column{
			{"id", c.ID},
			{"customer_type", customerType},
			{"territory", territory},
		},
		Touch: true,
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// CustomerGroupRepo grupos de clientes por nombre.
type CustomerGroupRepo struct {
	q Querier
}

// NewCustomerGroupRepository construye el adaptador.
func NewCustomerGroupRepository(q Querier) *CustomerGroupRepo {
	return &CustomerGroupRepo{q: q}
}

// Ensure crea el grupo si no existe.
func (r *CustomerGroupRepo) Ensure(ctx context.Context, name string) (bool, error) {
	return ensureByKey(ctx, r.q, upsertSpec{
		Table: "customer_groups",
		Keys:  []column{{"name", name}},
	})
}
