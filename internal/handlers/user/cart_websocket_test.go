package user

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"furniture_back_end/internal/cache"
	"furniture_back_end/internal/catalog"
	"furniture_back_end/internal/database"
	"furniture_back_end/internal/middleware"
	"furniture_back_end/internal/models"
	"furniture_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type frame struct {
	Type  string `json:"type"`
	Event string `json:"event"`
	Time  string `json:"time"`
	Cart  struct {
		Count int     `json:"count"`
		Total float64 `json:"total"`
	} `json:"cart"`
}

func newCartServer(t *testing.T, tick time.Duration) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	sessions := database.NewSessionStore()
	notifier := cache.NewMemoryNotifier()
	cat := catalog.New([]models.Product{
		{ID: 1, Name: "產品 1", Category: "客廳", Price: decimal.NewFromInt(10000)},
	})

	h := NewHandler(Deps{
		Auth: services.NewAuthService(sessions, log),
		Cart: services.NewCartService(services.CartDeps{
			Catalog:  cat,
			Carts:    database.NewCartStore(),
			Orders:   database.NewOrderStore(),
			Sessions: sessions,
			Notifier: notifier,
			Log:      log,
		}),
		Notifier: notifier,
		Log:      log,
	})
	h.tick = tick

	r := gin.New()
	cart := r.Group("/api/cart", middleware.Session(middleware.NewCookieStore("secret", 3600, false), sessions, log))
	cart.GET("", h.GetCart)
	cart.POST("/items", h.AddItem)
	cart.GET("/ws", h.CartWebSocket)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// openCart gets a session cookie over HTTP and opens the live cart socket
// with it.
func openCart(t *testing.T, srv *httptest.Server) (*http.Client, *websocket.Conn) {
	t.Helper()
	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}
	resp, err := client.Get(srv.URL + "/api/cart")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	u, _ := url.Parse(srv.URL)
	header := http.Header{}
	for _, c := range jar.Cookies(u) {
		header.Add("Cookie", c.String())
	}
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/cart/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return client, conn
}

// waitFor reads frames until one of the wanted type arrives.
func waitFor(t *testing.T, conn *websocket.Conn, typ string) frame {
	t.Helper()
	got := make(chan frame, 1)
	go func() {
		for {
			var f frame
			if err := conn.ReadJSON(&f); err != nil {
				return
			}
			if f.Type == typ {
				got <- f
				return
			}
		}
	}()
	select {
	case f := <-got:
		return f
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for %q frame", typ)
		return frame{}
	}
}

func TestCartWebSocketPushesCartChanges(t *testing.T) {
	srv := newCartServer(t, time.Hour)
	client, conn := openCart(t, srv)

	hello := waitFor(t, conn, "connected")
	if hello.Cart.Count != 0 {
		t.Fatalf("connected frame cart = %+v", hello.Cart)
	}

	resp, err := client.Post(srv.URL+"/api/cart/items", "application/json", strings.NewReader(`{"productId":1}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add item status %d", resp.StatusCode)
	}

	update := waitFor(t, conn, "cart_updated")
	if update.Event != cache.EventCartUpdated || update.Cart.Count != 1 || update.Cart.Total != 10000 {
		t.Fatalf("cart_updated frame = %+v", update)
	}
}

func TestCartWebSocketTicks(t *testing.T) {
	srv := newCartServer(t, 10*time.Millisecond)
	_, conn := openCart(t, srv)

	tick := waitFor(t, conn, "tick")
	if _, err := time.ParseInLocation(clockLayout, tick.Time, time.Local); err != nil {
		t.Fatalf("tick time %q: %v", tick.Time, err)
	}
}
