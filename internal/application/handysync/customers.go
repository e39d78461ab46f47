package handysync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/application/ports"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/jhoicas/handy-sync/internal/domain/repository"
	"github.com/rs/zerolog"
)

// SyncCustomersUseCase trae los clientes de Handy y los crea o actualiza por código.
type SyncCustomersUseCase struct {
	client       ports.HandyClient
	creds        *CredentialsProvider
	customerRepo repository.CustomerRepository
	groupRepo    repository.CustomerGroupRepository
	defaultGroup string
	rec          *Recorder
	log          zerolog.Logger
}

// NewSyncCustomersUseCase construye el caso de uso. defaultGroup vacío usa "Commercial".
func NewSyncCustomersUseCase(
	client ports.HandyClient,
	creds *CredentialsProvider,
	customerRepo repository.CustomerRepository,
	groupRepo repository.CustomerGroupRepository,
	defaultGroup string,
	rec *Recorder,
	log zerolog.Logger,
) *SyncCustomersUseCase {
	if defaultGroup == "" {
		defaultGroup = entity.DefaultCustomerGroup
	}
	return &SyncCustomersUseCase{
		client:       client,
		creds:        creds,
		customerRepo: customerRepo,
		groupRepo:    groupRepo,
		defaultGroup: defaultGroup,
		rec:          rec,
		log:          log,
	}
}

// Execute recorre GET /customer página por página. Cada upsert es independiente:
// un error local aborta la corrida sin deshacer lo ya escrito.
func (uc *SyncCustomersUseCase) Execute(ctx context.Context) (res *dto.SyncResult, err error) {
	started := time.Now()
	res = &dto.SyncResult{}
	defer func() { uc.rec.Finish(ctx, entity.SyncOpCustomers, started, res, err) }()

	cred, err := uc.creds.Resolve(ctx)
	if err != nil {
		return res, err
	}

	groups := map[string]bool{}
	ensureGroup := func(name string) error {
		if groups[name] {
			return nil
		}
		if _, err := uc.groupRepo.Ensure(ctx, name); err != nil {
			return fmt.Errorf("grupo de clientes %q: %w", name, err)
		}
		groups[name] = true
		return nil
	}

	err = uc.client.ForEachCustomerPage(ctx, cred, func(page []dto.HandyCustomer) error {
		for _, remote := range page {
			code := strings.TrimSpace(remote.Code)
			if code == "" {
				continue
			}
			customer := mapCustomer(remote, uc.defaultGroup)
			customer.HandyCode = code
			if err := ensureGroup(customer.CustomerGroup); err != nil {
				return err
			}
			created, err := uc.customerRepo.UpsertByHandyCode(ctx, customer)
			if err != nil {
				return fmt.Errorf("cliente %s: %w", code, err)
			}
			res.Processed++
			if created {
				res.Created++
			} else {
				res.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("sincronizar clientes: %w", err)
	}
	res.Message = fmt.Sprintf("Se sincronizaron %d clientes desde Handy.", res.Processed)
	return res, nil
}

// mapCustomer traduce el cliente remoto con los valores por defecto locales.
func mapCustomer(remote dto.HandyCustomer, defaultGroup string) *entity.Customer {
	c := &entity.Customer{
		Name:             entity.DefaultCustomerName,
		CustomerGroup:    defaultGroup,
		CustomerType:     entity.DefaultCustomerType,
		Territory:        entity.DefaultTerritory,
		Phone:            remote.PhoneNumber,
		Email:            remote.Email,
		HandyPaymentType: remote.PaymentType,
		HandyCreditDays:  remote.CreditDays,
		Latitude:         remote.Latitude,
		Longitude:        remote.Longitude,
	}
	if remote.Description != nil && strings.TrimSpace(*remote.Description) != "" {
		c.Name = strings.TrimSpace(*remote.Description)
	}
	// enabled ausente cuenta como habilitado
	c.Disabled = remote.Enabled != nil && !*remote.Enabled
	if remote.Zone != nil {
		c.ZoneID = remote.Zone.ID
		c.ZoneName = remote.Zone.Description
	}
	if remote.Category != nil && strings.TrimSpace(remote.Category.Description) != "" {
		c.CustomerGroup = strings.TrimSpace(remote.Category.Description)
	}
	return c
}
