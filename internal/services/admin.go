package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"furniture_back_end/internal/cache"
	"furniture_back_end/internal/database"
	"furniture_back_end/internal/models"
	"furniture_back_end/internal/pricing"
	"furniture_back_end/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const AdminTokenTTL = 12 * time.Hour

type AdminOptions struct {
	Username     string
	Password     string
	PasswordHash string
	JWTSecret    string
	TokenTTL     time.Duration
}

type AdminStats struct {
	Orders     int             `json:"orders"`
	Revenue    decimal.Decimal `json:"revenue"`
	Discounted int             `json:"discounted"`
}

type OrderPage struct {
	Orders     []models.Order `json:"orders"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalItems int            `json:"totalItems"`
}

// DraftInfoPatch edits order metadata. Nil fields are left untouched.
type DraftInfoPatch struct {
	Customer        *models.CustomerDetails `json:"customerDetails"`
	PaymentMethod   *string                 `json:"paymentMethod"`
	DeliveryTime    []string                `json:"deliveryTime"`
	OldFurniture    *string                 `json:"oldFurniture"`
	DisposalMethod  *string                 `json:"disposalMethod"`
	DiscountApplied *bool                   `json:"discountApplied"`
}

type ItemPatch struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	Floor       *int             `json:"floor"`
	HasElevator *bool            `json:"hasElevator"`
}

type NewItem struct {
	ProductID   int             `json:"productId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Floor       int             `json:"floor"`
	HasElevator bool            `json:"hasElevator"`
}

// AdminService runs the back office: login, order management and the
// edit flow. An order being edited has a draft copy; the stored order only
// changes on Save.
type AdminService struct {
	username  string
	hash      string
	secret    string
	ttl       time.Duration
	orders    *database.OrderStore
	blacklist cache.Blacklist
	log       *zap.Logger
	now       func() time.Time

	mu     sync.Mutex
	drafts map[string]*models.Order
}

func NewAdminService(opts AdminOptions, orders *database.OrderStore, blacklist cache.Blacklist, log *zap.Logger) (*AdminService, error) {
	hash := opts.PasswordHash
	if hash == "" {
		if opts.Password == "" {
			return nil, errors.New("admin password is not configured")
		}
		h, err := utils.HashPassword(opts.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = AdminTokenTTL
	}
	if blacklist == nil {
		blacklist = cache.NewMemoryBlacklist()
	}
	return &AdminService{
		username:  opts.Username,
		hash:      hash,
		secret:    opts.JWTSecret,
		ttl:       ttl,
		orders:    orders,
		blacklist: blacklist,
		log:       log,
		now:       time.Now,
		drafts:    make(map[string]*models.Order),
	}, nil
}

type AdminToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *AdminService) Login(username, password string) (AdminToken, error) {
	if username != s.username || !utils.CheckPassword(s.hash, password) {
		s.log.Warn("🚫 admin login refused", zap.String("username", username))
		return AdminToken{}, ErrInvalidCredentials
	}
	token, claims, err := utils.GenerateAdminJWT(s.secret, username, s.ttl)
	if err != nil {
		return AdminToken{}, err
	}
	s.log.Info("🔑 admin signed in", zap.String("username", username))
	return AdminToken{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Authenticate parses a bearer token and rejects revoked ones.
func (s *AdminService) Authenticate(ctx context.Context, token string) (*utils.AdminClaims, error) {
	claims, err := utils.ParseAdminJWT(s.secret, token)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	if s.blacklist.IsRevoked(ctx, claims.ID) {
		return nil, ErrNotAuthenticated
	}
	return claims, nil
}

// Logout revokes the token until its natural expiry.
func (s *AdminService) Logout(ctx context.Context, claims *utils.AdminClaims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.Revoke(ctx, claims.ID, ttl)
}

func (s *AdminService) ListOrders(page, pageSize int) OrderPage {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	orders, total := s.orders.List(page, pageSize)
	return OrderPage{Orders: orders, Page: page, PageSize: pageSize, TotalItems: total}
}

func (s *AdminService) GetOrder(ref string) (*models.Order, error) {
	o, ok := lookupOrder(s.orders, ref)
	if !ok {
		return nil, ErrNotFound
	}
	return o, nil
}

func (s *AdminService) DeleteOrder(ref string) error {
	o, ok := lookupOrder(s.orders, ref)
	if !ok {
		return ErrNotFound
	}
	if err := s.orders.Delete(o.ID); err != nil {
		return ErrNotFound
	}
	s.mu.Lock()
	delete(s.drafts, o.ID)
	s.mu.Unlock()
	s.log.Info("🗑️ order deleted", zap.String("order_id", o.ID), zap.String("number", o.Number))
	return nil
}

func (s *AdminService) Stats() AdminStats {
	all, total := s.orders.List(1, 0)
	st := AdminStats{Orders: total, Revenue: decimal.Zero}
	for _, o := range all {
		st.Revenue = st.Revenue.Add(o.Total)
		if o.DiscountApplied {
			st.Discounted++
		}
	}
	return st
}

// BeginEdit opens a draft of the order. Calling it again returns the open
// draft.
func (s *AdminService) BeginEdit(ref string) (*models.Order, error) {
	o, ok := lookupOrder(s.orders, ref)
	if !ok {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.drafts[o.ID]; ok {
		return d.Clone(), nil
	}
	s.drafts[o.ID] = o.Clone()
	return o, nil
}

func (s *AdminService) Draft(ref string) (*models.Order, error) {
	return s.editDraft(ref, func(*models.Order) error { return nil })
}

func (s *AdminService) UpdateDraftInfo(ref string, p DraftInfoPatch) (*models.Order, error) {
	return s.editDraft(ref, func(d *models.Order) error {
		payment, disposal, oldFurniture := d.PaymentMethod, d.DisposalMethod, d.OldFurniture
		delivery := d.DeliveryTime
		if p.PaymentMethod != nil {
			payment = *p.PaymentMethod
		}
		if p.DisposalMethod != nil {
			disposal = *p.DisposalMethod
		}
		if p.OldFurniture != nil {
			oldFurniture = *p.OldFurniture
		}
		if p.DeliveryTime != nil {
			delivery = p.DeliveryTime
		}
		if err := validateOrderInfo(payment, delivery, oldFurniture, disposal); err != nil {
			return err
		}
		if p.Customer != nil {
			if strings.TrimSpace(p.Customer.Name) == "" {
				return invalid("customerDetails.name", "required")
			}
			if strings.TrimSpace(p.Customer.Phone) == "" {
				return invalid("customerDetails.phone", "required")
			}
			if strings.TrimSpace(p.Customer.Address) == "" {
				return invalid("customerDetails.address", "required")
			}
			d.Customer = *p.Customer
		}
		d.PaymentMethod = payment
		d.DisposalMethod = disposal
		d.OldFurniture = strings.TrimSpace(oldFurniture)
		d.DeliveryTime = slices.Clone(delivery)
		if p.DiscountApplied != nil {
			d.DiscountApplied = *p.DiscountApplied
		}
		return nil
	})
}

func (s *AdminService) UpdateDraftItem(ref string, index int, p ItemPatch) (*models.Order, error) {
	return s.editDraft(ref, func(d *models.Order) error {
		if index < 0 || index >= len(d.Items) {
			return ErrNotFound
		}
		it := d.Items[index]
		if p.Name != nil {
			if strings.TrimSpace(*p.Name) == "" {
				return invalid("name", "required")
			}
			it.Name = strings.TrimSpace(*p.Name)
		}
		if p.Price != nil {
			if !p.Price.IsPositive() {
				return invalid("price", "must be greater than 0")
			}
			it.Price = *p.Price
		}
		if p.Quantity != nil {
			if *p.Quantity <= 0 {
				return invalid("quantity", "must be at least 1")
			}
			it.Quantity = *p.Quantity
		}
		if p.Floor != nil {
			if *p.Floor <= 0 {
				return invalid("floor", "must be at least 1")
			}
			it.Floor = *p.Floor
		}
		if p.HasElevator != nil {
			it.HasElevator = *p.HasElevator
		}
		d.Items[index] = it
		return nil
	})
}

func (s *AdminService) AddDraftItem(ref string, n NewItem) (*models.Order, error) {
	if strings.TrimSpace(n.Name) == "" {
		return nil, invalid("name", "required")
	}
	if !n.Price.IsPositive() {
		return nil, invalid("price", "must be greater than 0")
	}
	if n.Quantity == 0 {
		n.Quantity = 1
	}
	if n.Floor == 0 {
		n.Floor = 1
	}
	if n.Quantity < 0 {
		return nil, invalid("quantity", "must be at least 1")
	}
	if n.Floor < 0 {
		return nil, invalid("floor", "must be at least 1")
	}
	return s.editDraft(ref, func(d *models.Order) error {
		d.Items = append(d.Items, models.LineItem{
			ProductID:   n.ProductID,
			Name:        strings.TrimSpace(n.Name),
			Price:       n.Price,
			Quantity:    n.Quantity,
			Floor:       n.Floor,
			HasElevator: n.HasElevator,
		})
		return nil
	})
}

func (s *AdminService) RemoveDraftItem(ref string, index int) (*models.Order, error) {
	return s.editDraft(ref, func(d *models.Order) error {
		if index < 0 || index >= len(d.Items) {
			return ErrNotFound
		}
		d.Items = slices.Delete(d.Items, index, index+1)
		return nil
	})
}

// Save writes the draft over the stored order and closes the edit.
func (s *AdminService) Save(ref string) (*models.Order, error) {
	id, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrNotEditing
	}
	d.Total = pricing.Total(d.Items, d.DiscountApplied)
	d.UpdatedAt = s.now()
	delete(s.drafts, id)
	if err := s.orders.Replace(d); err != nil {
		return nil, ErrNotFound
	}
	s.log.Info("💾 order saved",
		zap.String("order_id", d.ID),
		zap.String("total", d.Total.StringFixed(pricing.Places)),
	)
	return d.Clone(), nil
}

// Cancel drops the draft and returns the stored order as it was.
func (s *AdminService) Cancel(ref string) (*models.Order, error) {
	id, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	_, ok := s.drafts[id]
	delete(s.drafts, id)
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotEditing
	}
	o, found := s.orders.Get(id)
	if !found {
		return nil, ErrNotFound
	}
	return o, nil
}

// editDraft applies fn to a working copy of the draft and keeps it only
// when fn succeeds. The total is recomputed after every change.
func (s *AdminService) editDraft(ref string, fn func(*models.Order) error) (*models.Order, error) {
	id, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrNotEditing
	}
	work := d.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	work.Total = pricing.Total(work.Items, work.DiscountApplied)
	s.drafts[id] = work
	return work.Clone(), nil
}

// resolve maps an id or display number to the order id. A draft whose
// order has been deleted is still reachable by id.
func (s *AdminService) resolve(ref string) (string, error) {
	if o, ok := lookupOrder(s.orders, ref); ok {
		return o.ID, nil
	}
	s.mu.Lock()
	_, ok := s.drafts[ref]
	s.mu.Unlock()
	if ok {
		return ref, nil
	}
	return "", ErrNotFound
}
