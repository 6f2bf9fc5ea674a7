package service_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"
	"github.com/SergeyBogomolovv/marketplace-core/internal/events"
	"github.com/SergeyBogomolovv/marketplace-core/internal/gateway"
	"github.com/SergeyBogomolovv/marketplace-core/pkg/trm"
	"github.com/shopspring/decimal"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeClock - управляемое время для тестов.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recorder запоминает опубликованные события.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, ev events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) Types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]events.Type, 0, len(r.events))
	for _, ev := range r.events {
		types = append(types, ev.Type())
	}
	return types
}

func (r *recorder) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

func (r *recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// memTx эмулирует транзакцию: журнал отката и удерживаемые блокировки строк.
type memTx struct {
	store *memStore
	undo  []func()
	held  map[string]*sync.Mutex
}

type memTxKey struct{}

func txFrom(ctx context.Context) *memTx {
	tx, _ := ctx.Value(memTxKey{}).(*memTx)
	return tx
}

func (tx *memTx) Commit() error {
	tx.undo = nil
	tx.release()
	return nil
}

func (tx *memTx) Rollback() error {
	tx.store.mu.Lock()
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.store.mu.Unlock()
	tx.undo = nil
	tx.release()
	return nil
}

func (tx *memTx) release() {
	for key, m := range tx.held {
		m.Unlock()
		delete(tx.held, key)
	}
}

// memManager - trm.Manager поверх memStore.
type memManager struct {
	store *memStore
}

var _ trm.Manager = (*memManager)(nil)

func (m *memManager) BeginTx(ctx context.Context) (context.Context, trm.Transaction, error) {
	tx := &memTx{store: m.store, held: make(map[string]*sync.Mutex)}
	return context.WithValue(ctx, memTxKey{}, tx), tx, nil
}

func (m *memManager) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		return callback(ctx)
	}
	ctx, tx, err := m.BeginTx(ctx)
	if err != nil {
		return err
	}
	if err := callback(ctx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// memStore реализует все репозитории сервиса в памяти.
type memStore struct {
	mu       sync.Mutex
	rowLocks map[string]*sync.Mutex

	orders    map[string]entities.Order
	methods   map[string]entities.PaymentMethod
	payments  map[string]entities.Payment
	coupons   map[string]entities.Coupon
	usages    map[string]entities.CouponUsage
	shippings map[string]entities.Shipping
	history   []entities.ShippingStatusChange

	// failOn позволяет уронить операцию по имени.
	failOn map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		rowLocks:  make(map[string]*sync.Mutex),
		orders:    make(map[string]entities.Order),
		methods:   defaultMethods(),
		payments:  make(map[string]entities.Payment),
		coupons:   make(map[string]entities.Coupon),
		usages:    make(map[string]entities.CouponUsage),
		shippings: make(map[string]entities.Shipping),
		failOn:    make(map[string]error),
	}
}

func defaultMethods() map[string]entities.PaymentMethod {
	return map[string]entities.PaymentMethod{
		"VNPAY": {
			Code:       "VNPAY",
			Name:       "VNPay",
			Kind:       entities.PaymentMethodOnline,
			FeePercent: decimal.NewFromInt(2),
			FixedFee:   decimal.NewFromInt(2000),
			IsActive:   true,
		},
		"COD": {
			Code:     "COD",
			Name:     "Cash on delivery",
			Kind:     entities.PaymentMethodCashOnDelivery,
			IsActive: true,
		},
		"MOMO": {
			Code:     "MOMO",
			Name:     "MoMo",
			Kind:     entities.PaymentMethodOnline,
			IsActive: false,
		},
	}
}

func (s *memStore) fail(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failOn[op]
}

// lock берет блокировку строки, если в контексте есть транзакция.
func (s *memStore) lock(ctx context.Context, key string) {
	tx := txFrom(ctx)
	if tx == nil {
		return
	}
	if _, ok := tx.held[key]; ok {
		return
	}
	s.mu.Lock()
	m, ok := s.rowLocks[key]
	if !ok {
		m = &sync.Mutex{}
		s.rowLocks[key] = m
	}
	s.mu.Unlock()

	m.Lock()
	tx.held[key] = m
}

// record добавляет шаг отката. Вызывается под s.mu.
func (s *memStore) record(ctx context.Context, undo func()) {
	if tx := txFrom(ctx); tx != nil {
		tx.undo = append(tx.undo, undo)
	}
}

func (s *memStore) CreateOrder(ctx context.Context, o entities.Order) error {
	if err := s.fail("CreateOrder"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
	s.record(ctx, func() { delete(s.orders, o.ID) })
	return nil
}

func (s *memStore) GetOrder(_ context.Context, id string) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	return o, nil
}

func (s *memStore) GetOrderForUpdate(ctx context.Context, id string) (entities.Order, error) {
	s.lock(ctx, "order:"+id)
	return s.GetOrder(ctx, id)
}

func (s *memStore) UpdateOrder(ctx context.Context, o entities.Order) error {
	if err := s.fail("UpdateOrder"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.orders[o.ID]
	if !ok {
		return entities.ErrOrderNotFound
	}
	s.orders[o.ID] = o
	s.record(ctx, func() { s.orders[o.ID] = prev })
	return nil
}

func (s *memStore) GetPaymentMethod(_ context.Context, code string) (entities.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.methods[code]
	if !ok {
		return entities.PaymentMethod{}, entities.ErrPaymentMethodNotFound
	}
	return m, nil
}

func (s *memStore) CreatePayment(ctx context.Context, p entities.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.payments {
		if existing.OrderID == p.OrderID || existing.TransactionID == p.TransactionID {
			return entities.ErrPaymentExists
		}
	}
	s.payments[p.ID] = p
	s.record(ctx, func() { delete(s.payments, p.ID) })
	return nil
}

func (s *memStore) GetPayment(_ context.Context, id string) (entities.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return entities.Payment{}, entities.ErrPaymentNotFound
	}
	return p, nil
}

func (s *memStore) GetPaymentForUpdate(ctx context.Context, id string) (entities.Payment, error) {
	s.lock(ctx, "payment:"+id)
	return s.GetPayment(ctx, id)
}

func (s *memStore) GetPaymentByOrder(_ context.Context, orderID string) (entities.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.OrderID == orderID {
			return p, nil
		}
	}
	return entities.Payment{}, entities.ErrPaymentNotFound
}

func (s *memStore) GetPaymentByTransactionForUpdate(ctx context.Context, transactionID string) (entities.Payment, error) {
	s.mu.Lock()
	var id string
	for _, p := range s.payments {
		if p.TransactionID == transactionID {
			id = p.ID
		}
	}
	s.mu.Unlock()
	if id == "" {
		return entities.Payment{}, entities.ErrPaymentNotFound
	}
	return s.GetPaymentForUpdate(ctx, id)
}

func (s *memStore) UpdatePayment(ctx context.Context, p entities.Payment) error {
	if err := s.fail("UpdatePayment"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.payments[p.ID]
	if !ok {
		return entities.ErrPaymentNotFound
	}
	s.payments[p.ID] = p
	s.record(ctx, func() { s.payments[p.ID] = prev })
	return nil
}

func (s *memStore) CreateCoupon(ctx context.Context, c entities.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.coupons {
		if existing.Code == c.Code {
			return entities.ErrCouponExists
		}
	}
	s.coupons[c.ID] = c
	s.record(ctx, func() { delete(s.coupons, c.ID) })
	return nil
}

func (s *memStore) couponByCode(code string) (entities.Coupon, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.coupons {
		if c.Code == code {
			return c, true
		}
	}
	return entities.Coupon{}, false
}

func (s *memStore) GetCouponByCode(_ context.Context, code string) (entities.Coupon, error) {
	c, ok := s.couponByCode(code)
	if !ok {
		return entities.Coupon{}, entities.ErrCouponNotFound
	}
	return c, nil
}

func (s *memStore) GetCouponByCodeForUpdate(ctx context.Context, code string) (entities.Coupon, error) {
	c, ok := s.couponByCode(code)
	if !ok {
		return entities.Coupon{}, entities.ErrCouponNotFound
	}
	s.lock(ctx, "coupon:"+c.ID)

	// После блокировки читаем строку заново, как это делает SELECT FOR UPDATE.
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coupons[c.ID], nil
}

func (s *memStore) CountCouponUsages(_ context.Context, couponID, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, u := range s.usages {
		if u.CouponID == couponID && u.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *memStore) IncrementCouponUsage(ctx context.Context, couponID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.coupons[couponID]
	if !ok || c.UsedCount >= c.UsageLimit {
		return 0, entities.ErrCouponUsageLimit
	}
	prev := c
	c.UsedCount++
	s.coupons[couponID] = c
	s.record(ctx, func() { s.coupons[couponID] = prev })
	return c.UsedCount, nil
}

func (s *memStore) CreateCouponUsage(ctx context.Context, u entities.CouponUsage) error {
	if err := s.fail("CreateCouponUsage"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.usages {
		if existing.CouponID == u.CouponID && existing.OrderID == u.OrderID {
			return entities.ErrCouponAlreadyUsed
		}
	}
	s.usages[u.ID] = u
	s.record(ctx, func() { delete(s.usages, u.ID) })
	return nil
}

func (s *memStore) CreateShipping(ctx context.Context, sh entities.Shipping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.shippings {
		if existing.OrderID == sh.OrderID {
			return entities.ErrShippingExists
		}
	}
	s.shippings[sh.ID] = sh
	s.record(ctx, func() { delete(s.shippings, sh.ID) })
	return nil
}

func (s *memStore) GetShipping(_ context.Context, id string) (entities.Shipping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shippings[id]
	if !ok {
		return entities.Shipping{}, entities.ErrShippingNotFound
	}
	return sh, nil
}

func (s *memStore) GetShippingForUpdate(ctx context.Context, id string) (entities.Shipping, error) {
	s.lock(ctx, "shipping:"+id)
	return s.GetShipping(ctx, id)
}

func (s *memStore) GetShippingByOrder(_ context.Context, orderID string) (entities.Shipping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sh := range s.shippings {
		if sh.OrderID == orderID {
			return sh, nil
		}
	}
	return entities.Shipping{}, entities.ErrShippingNotFound
}

func (s *memStore) UpdateShipping(ctx context.Context, sh entities.Shipping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.shippings[sh.ID]
	if !ok {
		return entities.ErrShippingNotFound
	}
	s.shippings[sh.ID] = sh
	s.record(ctx, func() { s.shippings[sh.ID] = prev })
	return nil
}

func (s *memStore) AddShippingStatusChange(ctx context.Context, c entities.ShippingStatusChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.history)
	s.history = append(s.history, c)
	s.record(ctx, func() { s.history = s.history[:n] })
	return nil
}

func (s *memStore) ShippingHistory(_ context.Context, shippingID string) ([]entities.ShippingStatusChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.ShippingStatusChange
	for _, c := range s.history {
		if c.ShippingID == shippingID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ChangedAt.Before(out[j].ChangedAt) })
	return out, nil
}

// memCache - Cache без TTL.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *memCache) Set(_ context.Context, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func (c *memCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

const testSecret = "TESTSECRET"

func newTestGateway() *gateway.VNPay {
	return gateway.NewVNPay(gateway.Config{
		TmnCode:    "DEMO0001",
		HashSecret: testSecret,
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		Version:    "2.1.0",
		Command:    "pay",
		Locale:     "vn",
		OrderType:  "other",
		Location:   time.FixedZone("ICT", 7*3600),
	})
}
