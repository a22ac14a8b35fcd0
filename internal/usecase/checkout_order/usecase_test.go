package checkout_order

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EquestrianHub/internal/domain"
	cartStore "github.com/m04kA/EquestrianHub/internal/infra/cache/cart"
	"github.com/m04kA/EquestrianHub/internal/integrations/events"
	"github.com/m04kA/EquestrianHub/internal/integrations/verifier"
	"github.com/m04kA/EquestrianHub/pkg/logger"
)

type mockOrders struct {
	mock.Mock
}

func (m *mockOrders) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	args := m.Called(ctx, order)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	created := *order
	created.ID = 15
	return &created, nil
}

func (m *mockOrders) CreateItems(ctx context.Context, orderID int64, items []domain.OrderItem) ([]domain.OrderItem, error) {
	args := m.Called(ctx, orderID, items)
	out := make([]domain.OrderItem, len(items))
	for i, item := range items {
		item.ID = int64(i + 1)
		item.OrderID = orderID
		out[i] = item
	}
	return out, args.Error(0)
}

func (m *mockOrders) UpdateStatus(ctx context.Context, id int64, from []domain.OrderStatus, to domain.OrderStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

type productMap map[int64]*domain.Product

func (p productMap) GetByIDs(_ context.Context, ids []int64) (map[int64]*domain.Product, error) {
	out := make(map[int64]*domain.Product, len(ids))
	for _, id := range ids {
		if product, ok := p[id]; ok {
			copied := *product
			out[id] = &copied
		}
	}
	return out, nil
}

type userStub struct{}

func (userStub) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return &domain.User{ID: id, Email: "anna@example.com", Name: "Anna"}, nil
}

type proofStub struct {
	deleted []string
}

func (p *proofStub) Save(_ context.Context, userID int64, contentType string, data []byte) (string, error) {
	return "7_receipt.pdf", nil
}

func (p *proofStub) Delete(_ context.Context, key string) error {
	p.deleted = append(p.deleted, key)
	return nil
}

type stubVerifier struct {
	result   *domain.Verification
	expected decimal.Decimal
}

func (s *stubVerifier) Verify(_ context.Context, _ verifier.Document, expected decimal.Decimal, _ string) *domain.Verification {
	s.expected = expected
	return s.result
}

type recordingNotifier struct {
	order *domain.OrderDetails
}

func (n *recordingNotifier) OrderCreated(_ context.Context, order *domain.OrderDetails, _ *domain.User) error {
	n.order = order
	return nil
}

type recordingPublisher struct {
	keys []string
	data []interface{}
}

func (p *recordingPublisher) Publish(_ context.Context, key string, data interface{}) {
	p.keys = append(p.keys, key)
	p.data = append(p.data, data)
}

type nopMetrics struct{}

func (nopMetrics) RecordOrder(string) {}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	uc        *UseCase
	orders    *mockOrders
	products  productMap
	cart      *cartStore.MemoryStore
	verifier  *stubVerifier
	notifier  *recordingNotifier
	publisher *recordingPublisher
	proofs    *proofStub
}

const userID = int64(7)

func newFixture(t *testing.T, verification *domain.Verification) *fixture {
	t.Helper()

	f := &fixture{
		orders: &mockOrders{},
		products: productMap{
			1: {ID: 1, Name: "Saddle pad", Price: decimal.NewFromInt(50), Active: true},
			2: {ID: 2, Name: "Hoof pick", Price: decimal.NewFromInt(30), Active: true},
			3: {ID: 3, Name: "Old bridle", Price: decimal.NewFromInt(80), Active: false},
		},
		cart:      cartStore.NewMemoryStore(),
		verifier:  &stubVerifier{result: verification},
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
		proofs:    &proofStub{},
	}

	f.uc = NewUseCase(f.orders, f.products, f.cart, userStub{}, f.proofs, f.verifier, f.notifier,
		f.publisher, nopMetrics{}, inlineTx{}, 1<<20, logger.NewWriter(io.Discard, logger.LevelDebug))
	f.uc.async = func(fn func()) { fn() }

	ctx := context.Background()
	_, err := f.cart.Add(ctx, userID, 1, 2)
	require.NoError(t, err)
	_, err = f.cart.Add(ctx, userID, 2, 1)
	require.NoError(t, err)
	return f
}

func request() *Request {
	return &Request{
		UserID: userID,
		Proof:  PaymentProof{FileName: "receipt.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
	}
}

func failedVerification() *domain.Verification {
	return domain.NewVerification(&domain.VerificationResult{
		IsPaymentProof: true,
		Confidence:     45,
		IsValid:        false,
		Issues:         []string{"amount mismatch"},
		DocumentType:   "Screenshot",
	}, time.Now())
}

func TestExecute_FailedVerificationKeepsPending(t *testing.T) {
	f := newFixture(t, failedVerification())
	f.orders.On("Create", mock.Anything, mock.Anything).Return(nil, nil)
	f.orders.On("CreateItems", mock.Anything, int64(15), mock.Anything).Return(nil)

	order, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.SummaryFailed, order.Verification.Summary)
	assert.Equal(t, "VERIFICATION FAILED (45% confidence)", order.Verification.Label())
	f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	require.NotNil(t, f.notifier.order)
	assert.Equal(t, int64(15), f.notifier.order.ID)
}

func TestExecute_SnapshotsPrices(t *testing.T) {
	f := newFixture(t, failedVerification())
	f.orders.On("Create", mock.Anything, mock.Anything).Return(nil, nil)
	f.orders.On("CreateItems", mock.Anything, int64(15), mock.Anything).Return(nil)

	order, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	// цена в каталоге меняется после оформления
	f.products[1].Price = decimal.NewFromInt(60)

	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(130)), order.TotalAmount.String())
	assert.True(t, f.verifier.expected.Equal(decimal.NewFromInt(130)))
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Saddle pad", order.Items[0].ProductName)
	assert.True(t, order.Items[0].PriceAtPurchase.Equal(decimal.NewFromInt(50)))
	assert.True(t, order.Items[1].PriceAtPurchase.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, domain.DefaultPickupLocation, order.PickupLocation)

	lines, err := f.cart.Lines(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	require.Equal(t, []string{events.OrderCreated}, f.publisher.keys)
	event, ok := f.publisher.data[0].(events.OrderEvent)
	require.True(t, ok)
	assert.Equal(t, 2, event.ItemsCount)
	assert.Equal(t, "pending", event.Status)
}

func TestExecute_VerifiedMovesToVerified(t *testing.T) {
	verified := domain.NewVerification(&domain.VerificationResult{
		IsPaymentProof: true, AmountMatches: true, Confidence: 92, IsValid: true,
	}, time.Now())
	f := newFixture(t, verified)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(nil, nil)
	f.orders.On("CreateItems", mock.Anything, int64(15), mock.Anything).Return(nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(15), []domain.OrderStatus{domain.OrderStatusPending}, domain.OrderStatusVerified).Return(nil)

	order, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusVerified, order.Status)
	f.orders.AssertExpectations(t)
}

func TestExecute_EmptyCart(t *testing.T) {
	f := newFixture(t, failedVerification())
	require.NoError(t, f.cart.Clear(context.Background(), userID))

	_, err := f.uc.Execute(context.Background(), request())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.ErrorIs(t, err, domain.ErrValidation)
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_InactiveProductRejected(t *testing.T) {
	f := newFixture(t, failedVerification())
	_, err := f.cart.Add(context.Background(), userID, 3, 1)
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request())

	assert.ErrorIs(t, err, ErrProductUnavailable)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_MissingProof(t *testing.T) {
	f := newFixture(t, failedVerification())
	req := request()
	req.Proof.Data = nil

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_TransactionFailureKeepsCart(t *testing.T) {
	f := newFixture(t, failedVerification())
	f.orders.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := f.uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrInternal)

	lines, err := f.cart.Lines(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.Empty(t, f.publisher.keys)
	assert.Equal(t, []string{"7_receipt.pdf"}, f.proofs.deleted)
}
