package services

import (
	"context"
	"slices"
	"strings"
	"time"

	"furniture_back_end/internal/cache"
	"furniture_back_end/internal/catalog"
	"furniture_back_end/internal/database"
	"furniture_back_end/internal/models"
	"furniture_back_end/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderNotifier is told about every new order. Failures are logged only.
type OrderNotifier interface {
	SendOrderNotification(ctx context.Context, o *models.Order) error
}

type CartView struct {
	Items           []models.LineItem `json:"items"`
	DiscountApplied bool              `json:"discountApplied"`
	Count           int               `json:"count"`
	Summary         pricing.Summary   `json:"summary"`
	Total           decimal.Decimal   `json:"total"`
}

type DetailsPatch struct {
	Floor       *int  `json:"floor"`
	HasElevator *bool `json:"hasElevator"`
}

// LineUpdate changes a cart line. Nil fields are left untouched.
type LineUpdate struct {
	Quantity    *int  `json:"quantity"`
	Floor       *int  `json:"floor"`
	HasElevator *bool `json:"hasElevator"`
}

type CheckoutForm struct {
	Name           string   `json:"name"`
	Phone          string   `json:"phone"`
	Address        string   `json:"address"`
	LineID         string   `json:"lineId"`
	PaymentMethod  string   `json:"paymentMethod"`
	DeliveryTime   []string `json:"deliveryTime"`
	OldFurniture   string   `json:"oldFurniture"`
	DisposalMethod string   `json:"disposalMethod"`
}

type CartService struct {
	catalog  *catalog.Catalog
	carts    *database.CartStore
	orders   *database.OrderStore
	sessions *database.SessionStore
	notifier cache.Notifier
	mailer   OrderNotifier
	log      *zap.Logger
	now      func() time.Time
}

type CartDeps struct {
	Catalog  *catalog.Catalog
	Carts    *database.CartStore
	Orders   *database.OrderStore
	Sessions *database.SessionStore
	Notifier cache.Notifier
	// Mailer is optional.
	Mailer OrderNotifier
	Log    *zap.Logger
	Now    func() time.Time
}

func NewCartService(d CartDeps) *CartService {
	s := &CartService{
		catalog:  d.Catalog,
		carts:    d.Carts,
		orders:   d.Orders,
		sessions: d.Sessions,
		notifier: d.Notifier,
		mailer:   d.Mailer,
		log:      d.Log,
		now:      d.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.notifier == nil {
		s.notifier = cache.NewMemoryNotifier()
	}
	return s
}

func (s *CartService) View(sessionID string) CartView {
	return newCartView(s.carts.Get(sessionID))
}

// AddItem merges by product id: an existing line gains one unit and keeps
// its floor and elevator settings.
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID int) (CartView, error) {
	p, ok := s.catalog.Get(productID)
	if !ok {
		return CartView{}, ErrNotFound
	}
	return s.mutate(ctx, sessionID, func(c *models.Cart) error {
		if i := c.Index(productID); i >= 0 {
			c.Items[i].Quantity++
			return nil
		}
		c.Items = append(c.Items, models.LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  1,
			Floor:     1,
		})
		return nil
	})
}

func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID, qty int) (CartView, error) {
	return s.UpdateItem(ctx, sessionID, productID, LineUpdate{Quantity: &qty})
}

func (s *CartService) UpdateDetails(ctx context.Context, sessionID string, productID int, p DetailsPatch) (CartView, error) {
	return s.UpdateItem(ctx, sessionID, productID, LineUpdate{Floor: p.Floor, HasElevator: p.HasElevator})
}

// UpdateItem applies every field of u to one line or none of them.
func (s *CartService) UpdateItem(ctx context.Context, sessionID string, productID int, u LineUpdate) (CartView, error) {
	if u.Quantity != nil && *u.Quantity <= 0 {
		return CartView{}, invalid("quantity", "must be at least 1")
	}
	if u.Floor != nil && *u.Floor <= 0 {
		return CartView{}, invalid("floor", "must be at least 1")
	}
	return s.mutate(ctx, sessionID, func(c *models.Cart) error {
		i := c.Index(productID)
		if i < 0 {
			return ErrNotFound
		}
		if u.Quantity != nil {
			c.Items[i].Quantity = *u.Quantity
		}
		if u.Floor != nil {
			c.Items[i].Floor = *u.Floor
		}
		if u.HasElevator != nil {
			c.Items[i].HasElevator = *u.HasElevator
		}
		return nil
	})
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID int) (CartView, error) {
	return s.mutate(ctx, sessionID, func(c *models.Cart) error {
		i := c.Index(productID)
		if i < 0 {
			return ErrNotFound
		}
		c.Items = slices.Delete(c.Items, i, i+1)
		return nil
	})
}

func (s *CartService) Clear(ctx context.Context, sessionID string) (CartView, error) {
	return s.mutate(ctx, sessionID, func(c *models.Cart) error {
		c.Items = []models.LineItem{}
		c.DiscountApplied = false
		return nil
	})
}

// ApplyDiscount accepts only the exact code. A wrong code leaves the flag
// as it was.
func (s *CartService) ApplyDiscount(ctx context.Context, sessionID, code string) (CartView, error) {
	if !pricing.IsDiscountCode(code) {
		return CartView{}, ErrInvalidDiscountCode
	}
	return s.mutate(ctx, sessionID, func(c *models.Cart) error {
		c.DiscountApplied = true
		return nil
	})
}

func (s *CartService) RemoveDiscount(ctx context.Context, sessionID string) (CartView, error) {
	return s.mutate(ctx, sessionID, func(c *models.Cart) error {
		c.DiscountApplied = false
		return nil
	})
}

// Submit turns the cart into an order for the signed-in user and empties
// the cart.
func (s *CartService) Submit(ctx context.Context, sessionID string, form CheckoutForm) (*models.Order, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok || sess.User == nil {
		return nil, ErrNotAuthenticated
	}
	user := *sess.User
	customer := models.CustomerDetails{
		Name:    firstNonEmpty(form.Name, user.Name),
		Phone:   firstNonEmpty(form.Phone, user.Phone),
		Address: firstNonEmpty(form.Address, user.Address),
		LineID:  firstNonEmpty(form.LineID, user.LineID),
	}
	if err := validateCheckout(customer, form); err != nil {
		return nil, err
	}

	var order *models.Order
	_, err := s.carts.Update(sessionID, func(c *models.Cart) error {
		if len(c.Items) == 0 {
			return invalid("items", "cart is empty")
		}
		now := s.now()
		order = &models.Order{
			ID:              uuid.NewString(),
			Number:          now.Format("200601021504") + customer.Phone,
			UserPhone:       user.Phone,
			Items:           c.Items,
			Customer:        customer,
			PaymentMethod:   form.PaymentMethod,
			DeliveryTime:    form.DeliveryTime,
			OldFurniture:    strings.TrimSpace(form.OldFurniture),
			DisposalMethod:  form.DisposalMethod,
			DiscountApplied: c.DiscountApplied,
			Total:           pricing.Total(c.Items, c.DiscountApplied),
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		s.orders.Add(order)

		c.Items = []models.LineItem{}
		c.DiscountApplied = false
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("📦 order submitted",
		zap.String("order_id", order.ID),
		zap.String("number", order.Number),
		zap.String("total", order.Total.StringFixed(pricing.Places)),
	)
	s.publish(ctx, sessionID, cache.EventCartCleared)
	s.notify(order.Clone())
	return order, nil
}

func (s *CartService) mutate(ctx context.Context, sessionID string, fn func(*models.Cart) error) (CartView, error) {
	c, err := s.carts.Update(sessionID, fn)
	if err != nil {
		return CartView{}, err
	}
	s.publish(ctx, sessionID, cache.EventCartUpdated)
	return newCartView(c), nil
}

func (s *CartService) publish(ctx context.Context, sessionID, event string) {
	if err := s.notifier.Publish(ctx, sessionID, event); err != nil {
		s.log.Warn("⚠️ cart event not published", zap.String("session", sessionID), zap.Error(err))
	}
}

func (s *CartService) notify(o *models.Order) {
	if s.mailer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.mailer.SendOrderNotification(ctx, o); err != nil {
			s.log.Warn("⚠️ order notification failed", zap.String("order_id", o.ID), zap.Error(err))
			return
		}
		s.log.Info("📤 order notification sent", zap.String("order_id", o.ID))
	}()
}

func newCartView(c *models.Cart) CartView {
	summary := pricing.Breakdown(c.Items, c.DiscountApplied)
	count := 0
	for _, it := range c.Items {
		count += it.Quantity
	}
	return CartView{
		Items:           c.Items,
		DiscountApplied: c.DiscountApplied,
		Count:           count,
		Summary:         summary,
		Total:           summary.Total,
	}
}

func validateCheckout(c models.CustomerDetails, form CheckoutForm) error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return invalid("name", "required")
	case strings.TrimSpace(c.Phone) == "":
		return invalid("phone", "required")
	case strings.TrimSpace(c.Address) == "":
		return invalid("address", "required")
	}
	return validateOrderInfo(form.PaymentMethod, form.DeliveryTime, form.OldFurniture, form.DisposalMethod)
}

// validateOrderInfo checks the checkout fields shared with the admin draft.
func validateOrderInfo(payment string, delivery []string, oldFurniture, disposal string) error {
	if !slices.Contains(models.PaymentMethods, payment) {
		return invalid("paymentMethod", "must be one of "+strings.Join(models.PaymentMethods, ", "))
	}
	if len(delivery) == 0 {
		return invalid("deliveryTime", "choose at least one slot")
	}
	for _, d := range delivery {
		if !slices.Contains(models.DeliverySlots, d) {
			return invalid("deliveryTime", "unknown slot "+d)
		}
	}
	if strings.TrimSpace(oldFurniture) == "" {
		return invalid("oldFurniture", "required, enter 無 when there is none")
	}
	switch disposal {
	case "", models.DisposalFree, models.DisposalPaid:
	default:
		return invalid("disposalMethod", "must be free or paid")
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
