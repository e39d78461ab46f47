package handysync_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/application/handysync"
	"github.com/jhoicas/handy-sync/internal/application/ports"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Cliente Handy en memoria
// ──────────────────────────────────────────────────────────────────────────────

type routeCall struct {
	UserID  int64
	Payload dto.CreateRoutePayload
}

type rechargeCall struct {
	UserID  int64
	Payload dto.RechargeRoutePayload
}

type plUpdate struct {
	ID      int64
	Payload dto.PriceListPayload
}

type qtyCall struct {
	Code     string
	Quantity float64
}

type fakeHandy struct {
	customerPages [][]dto.HandyCustomer
	productPages  [][]dto.HandyProduct
	fetchErr      error // error en la primera página de cualquier listado
	priceLists    []dto.HandyPriceList
	routes        []dto.HandyRoute
	users         map[string][]dto.HandyUser

	createPLErr    map[string]error
	rechargeErr    error
	createRouteErr error
	findUserErr    error
	quantityErr    map[string]error

	calls         int
	lastCred      ports.Credentials
	createdPL     []dto.PriceListPayload
	updatedPL     []plUpdate
	createdRoutes []routeCall
	recharges     []rechargeCall
	quantityPuts  []qtyCall
}

func (f *fakeHandy) hit(cred ports.Credentials) {
	f.calls++
	f.lastCred = cred
}

func (f *fakeHandy) ForEachCustomerPage(_ context.Context, cred ports.Credentials, fn func([]dto.HandyCustomer) error) error {
	f.hit(cred)
	if f.fetchErr != nil {
		return f.fetchErr
	}
	for _, p := range f.customerPages {
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeHandy) ForEachProductPage(_ context.Context, cred ports.Credentials, fn func([]dto.HandyProduct) error) error {
	f.hit(cred)
	if f.fetchErr != nil {
		return f.fetchErr
	}
	for _, p := range f.productPages {
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeHandy) ListProducts(_ context.Context, cred ports.Credentials) ([]dto.HandyProduct, error) {
	f.hit(cred)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var all []dto.HandyProduct
	for _, p := range f.productPages {
		all = append(all, p...)
	}
	return all, nil
}

func (f *fakeHandy) ListPriceLists(_ context.Context, cred ports.Credentials) ([]dto.HandyPriceList, error) {
	f.hit(cred)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.priceLists, nil
}

func (f *fakeHandy) CreatePriceList(_ context.Context, cred ports.Credentials, payload dto.PriceListPayload) error {
	f.hit(cred)
	if err := f.createPLErr[payload.Code]; err != nil {
		return err
	}
	f.createdPL = append(f.createdPL, payload)
	return nil
}

func (f *fakeHandy) UpdatePriceList(_ context.Context, cred ports.Credentials, id int64, payload dto.PriceListPayload) error {
	f.hit(cred)
	f.updatedPL = append(f.updatedPL, plUpdate{ID: id, Payload: payload})
	return nil
}

func (f *fakeHandy) ListOpenRoutes(_ context.Context, cred ports.Credentials) ([]dto.HandyRoute, error) {
	f.hit(cred)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.routes, nil
}

func (f *fakeHandy) FindUsersByName(_ context.Context, cred ports.Credentials, name string) ([]dto.HandyUser, error) {
	f.hit(cred)
	if f.findUserErr != nil {
		return nil, f.findUserErr
	}
	return f.users[name], nil
}

func (f *fakeHandy) CreateRoute(_ context.Context, cred ports.Credentials, userID int64, payload dto.CreateRoutePayload) error {
	f.hit(cred)
	if f.createRouteErr != nil {
		return f.createRouteErr
	}
	f.createdRoutes = append(f.createdRoutes, routeCall{UserID: userID, Payload: payload})
	return nil
}

func (f *fakeHandy) RechargeRoute(_ context.Context, cred ports.Credentials, userID int64, payload dto.RechargeRoutePayload) error {
	f.hit(cred)
	if f.rechargeErr != nil {
		return f.rechargeErr
	}
	f.recharges = append(f.recharges, rechargeCall{UserID: userID, Payload: payload})
	return nil
}

func (f *fakeHandy) UpdateProductQuantity(_ context.Context, cred ports.Credentials, code string, payload dto.ProductQuantityPayload) error {
	f.hit(cred)
	if err := f.quantityErr[code]; err != nil {
		return err
	}
	f.quantityPuts = append(f.quantityPuts, qtyCall{Code: code, Quantity: payload.Quantity})
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memDB struct {
	customers      map[string]*entity.Customer
	customerGroups map[string]bool
	items          map[string]*entity.Item
	itemGroups     map[string]string // name -> parent
	uoms           map[string]bool
	priceLists     map[string]bool
	itemPrices     map[string]map[string]decimal.Decimal
	bins           []*entity.Bin
	settings       *entity.HandySettings
	errorLogs      []*entity.ErrorLog
	runs           []*entity.SyncRun
	writes         int
}

func newMemDB() *memDB {
	return &memDB{
		customers:      map[string]*entity.Customer{},
		customerGroups: map[string]bool{},
		items:          map[string]*entity.Item{},
		itemGroups:     map[string]string{},
		uoms:           map[string]bool{},
		priceLists:     map[string]bool{},
		itemPrices:     map[string]map[string]decimal.Decimal{},
	}
}

type customerRepo struct{ db *memDB }

func (r customerRepo) UpsertByHandyCode(_ context.Context, c *entity.Customer) (bool, error) {
	r.db.writes++
	cp := *c
	_, exists := r.db.customers[c.HandyCode]
	r.db.customers[c.HandyCode] = &cp
	return !exists, nil
}

type customerGroupRepo struct{ db *memDB }

func (r customerGroupRepo) Ensure(_ context.Context, name string) (bool, error) {
	if r.db.customerGroups[name] {
		return false, nil
	}
	r.db.writes++
	r.db.customerGroups[name] = true
	return true, nil
}

type itemRepo struct{ db *memDB }

func (r itemRepo) GetByCode(_ context.Context, code string) (*entity.Item, error) {
	return r.db.items[code], nil
}

func (r itemRepo) Upsert(_ context.Context, it *entity.Item) (bool, error) {
	r.db.writes++
	cp := *it
	_, exists := r.db.items[it.ItemCode]
	r.db.items[it.ItemCode] = &cp
	return !exists, nil
}

type itemGroupRepo struct{ db *memDB }

func (r itemGroupRepo) GetRoot(context.Context) (string, error) {
	var roots []string
	for name, parent := range r.db.itemGroups {
		if parent == "" {
			roots = append(roots, name)
		}
	}
	if len(roots) == 0 {
		return "", nil
	}
	sort.Strings(roots)
	return roots[0], nil
}

func (r itemGroupRepo) Ensure(_ context.Context, name, parent string) (bool, error) {
	if _, ok := r.db.itemGroups[name]; ok {
		return false, nil
	}
	r.db.writes++
	r.db.itemGroups[name] = parent
	return true, nil
}

type uomRepo struct{ db *memDB }

func (r uomRepo) Ensure(_ context.Context, name string) (bool, error) {
	if r.db.uoms[name] {
		return false, nil
	}
	r.db.writes++
	r.db.uoms[name] = true
	return true, nil
}

type priceListRepo struct{ db *memDB }

func (r priceListRepo) List(context.Context) ([]*entity.PriceList, error) {
	var names []string
	for n := range r.db.priceLists {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]*entity.PriceList, 0, len(names))
	for _, n := range names {
		out = append(out, &entity.PriceList{Name: n, Enabled: true})
	}
	return out, nil
}

func (r priceListRepo) Ensure(_ context.Context, name string) (bool, error) {
	if r.db.priceLists[name] {
		return false, nil
	}
	r.db.writes++
	r.db.priceLists[name] = true
	return true, nil
}

func (r priceListRepo) ListItemPrices(_ context.Context, name string) ([]*entity.ItemPrice, error) {
	var codes []string
	for c := range r.db.itemPrices[name] {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	out := make([]*entity.ItemPrice, 0, len(codes))
	for _, c := range codes {
		out = append(out, &entity.ItemPrice{PriceList: name, ItemCode: c, Rate: r.db.itemPrices[name][c]})
	}
	return out, nil
}

func (r priceListRepo) UpsertItemPrice(_ context.Context, p *entity.ItemPrice) (bool, error) {
	r.db.writes++
	if r.db.itemPrices[p.PriceList] == nil {
		r.db.itemPrices[p.PriceList] = map[string]decimal.Decimal{}
	}
	_, exists := r.db.itemPrices[p.PriceList][p.ItemCode]
	r.db.itemPrices[p.PriceList][p.ItemCode] = p.Rate
	return !exists, nil
}

type binRepo struct{ db *memDB }

func (r binRepo) GetForUpdate(_ context.Context, item, wh string) (*entity.Bin, error) {
	for _, b := range r.db.bins {
		if b.ItemCode == item && b.Warehouse == wh {
			return b, nil
		}
	}
	return &entity.Bin{ItemCode: item, Warehouse: wh}, nil
}

func (r binRepo) Upsert(context.Context, *entity.Bin) error { return errors.New("no usado") }

func (r binRepo) ListByWarehouse(_ context.Context, wh string) ([]*entity.Bin, error) {
	var out []*entity.Bin
	for _, b := range r.db.bins {
		if b.Warehouse == wh {
			out = append(out, b)
		}
	}
	return out, nil
}

type settingsRepo struct{ db *memDB }

func (r settingsRepo) Get(context.Context) (*entity.HandySettings, error) { return r.db.settings, nil }

func (r settingsRepo) Save(_ context.Context, s *entity.HandySettings) error {
	cp := *s
	r.db.settings = &cp
	return nil
}

type errorLogRepo struct{ db *memDB }

func (r errorLogRepo) Create(_ context.Context, e *entity.ErrorLog) error {
	r.db.errorLogs = append(r.db.errorLogs, e)
	return nil
}

type syncRunRepo struct{ db *memDB }

func (r syncRunRepo) Create(_ context.Context, run *entity.SyncRun) error {
	r.db.runs = append(r.db.runs, run)
	return nil
}

func (r syncRunRepo) ListRecent(_ context.Context, limit int) ([]*entity.SyncRun, error) {
	out := make([]*entity.SyncRun, 0, len(r.db.runs))
	for i := len(r.db.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.db.runs[i])
	}
	return out, nil
}

type fakeMetrics struct {
	runs map[string]int
}

func (m *fakeMetrics) RecordSyncRun(op, status string, _, _, _ int, _ time.Duration) {
	if m.runs == nil {
		m.runs = map[string]int{}
	}
	m.runs[op+"/"+status]++
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

const testKey = "clave-de-prueba"

type harness struct {
	db      *memDB
	handy   *fakeHandy
	creds   *handysync.CredentialsProvider
	rec     *handysync.Recorder
	metrics *fakeMetrics
}

func newHarness() *harness {
	db := newMemDB()
	db.settings = &entity.HandySettings{APIKey: testKey}
	m := &fakeMetrics{}
	return &harness{
		db:      db,
		handy:   &fakeHandy{users: map[string][]dto.HandyUser{}},
		creds:   handysync.NewCredentialsProvider(settingsRepo{db}, ""),
		rec:     handysync.NewRecorder(syncRunRepo{db}, errorLogRepo{db}, m, zerolog.Nop()),
		metrics: m,
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func int64Ptr(v int64) *int64 { return &v }
func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}
