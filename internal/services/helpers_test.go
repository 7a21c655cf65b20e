package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"furniture_back_end/internal/cache"
	"furniture_back_end/internal/catalog"
	"furniture_back_end/internal/database"
	"furniture_back_end/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 5, 6, 14, 30, 0, 0, time.UTC)

type fakeMailer struct {
	sent chan *models.Order
}

func (m *fakeMailer) SendOrderNotification(_ context.Context, o *models.Order) error {
	m.sent <- o
	return nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Publish(_ context.Context, sessionID, event string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, sessionID+":"+event)
	return nil
}

func (n *recordingNotifier) Subscribe(ctx context.Context, _ string) (<-chan string, func()) {
	ch := make(chan string)
	close(ch)
	return ch, func() {}
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

type env struct {
	sessions *database.SessionStore
	carts    *database.CartStore
	orders   *database.OrderStore
	notifier *recordingNotifier
	mailer   *fakeMailer
	auth     *AuthService
	cart     *CartService
	member   *OrderService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		sessions: database.NewSessionStore(),
		carts:    database.NewCartStore(),
		orders:   database.NewOrderStore(),
		notifier: &recordingNotifier{},
		mailer:   &fakeMailer{sent: make(chan *models.Order, 4)},
	}
	cat := catalog.New([]models.Product{
		{ID: 1, Name: "產品 1", Category: "客廳", Price: decimal.NewFromInt(10000)},
		{ID: 2, Name: "產品 2", Category: "臥室", Price: decimal.NewFromInt(5000)},
		{ID: 3, Name: "產品 3", Category: "書房", Price: decimal.NewFromInt(5001)},
	})
	log := zap.NewNop()
	e.auth = NewAuthService(e.sessions, log)
	e.cart = NewCartService(CartDeps{
		Catalog:  cat,
		Carts:    e.carts,
		Orders:   e.orders,
		Sessions: e.sessions,
		Notifier: e.notifier,
		Mailer:   e.mailer,
		Log:      log,
		Now:      func() time.Time { return fixedNow },
	})
	e.member = NewOrderService(e.orders, e.sessions)
	return e
}

// signedIn returns a session with a logged-in member.
func (e *env) signedIn(t *testing.T, phone string) string {
	t.Helper()
	sid := e.sessions.Create().ID
	if _, err := e.auth.Login(sid, LoginInput{Phone: phone, Password: "x"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	return sid
}

func validForm() CheckoutForm {
	return CheckoutForm{
		PaymentMethod: models.PaymentCash,
		DeliveryTime:  []string{"平日", "下午"},
		OldFurniture:  "無",
	}
}

// placeOrder fills a cart and submits it.
func (e *env) placeOrder(t *testing.T, sid string, productIDs ...int) *models.Order {
	t.Helper()
	ctx := context.Background()
	for _, id := range productIDs {
		if _, err := e.cart.AddItem(ctx, sid, id); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}
	o, err := e.cart.Submit(ctx, sid, validForm())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return o
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var _ cache.Notifier = (*recordingNotifier)(nil)
