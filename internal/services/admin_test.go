package services

import (
	"errors"
	"testing"
	"time"

	"furniture_back_end/internal/cache"
	"furniture_back_end/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func newAdmin(t *testing.T, e *env) *AdminService {
	t.Helper()
	a, err := NewAdminService(AdminOptions{
		Username:  "admin",
		Password:  "s3cret",
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}, e.orders, cache.NewMemoryBlacklist(), zap.NewNop())
	if err != nil {
		t.Fatalf("admin service: %v", err)
	}
	return a
}

func TestAdminLoginAndLogout(t *testing.T) {
	e := newEnv(t)
	a := newAdmin(t, e)
	ctx := t.Context()

	if _, err := a.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, err := a.Login("root", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong user: %v", err)
	}

	tok, err := a.Login("admin", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := a.Authenticate(ctx, tok.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if claims.Subject != "admin" {
		t.Fatalf("subject = %s", claims.Subject)
	}

	if err := a.Logout(ctx, claims); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := a.Authenticate(ctx, tok.Token); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("revoked token accepted: %v", err)
	}
	if _, err := a.Authenticate(ctx, "garbage"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("garbage token: %v", err)
	}
}

func TestAdminOrders(t *testing.T) {
	e := newEnv(t)
	a := newAdmin(t, e)
	sid := e.signedIn(t, "0911")

	first := e.placeOrder(t, sid, 1)
	e.cart.ApplyDiscount(t.Context(), sid, "DISCOUNT10")
	e.placeOrder(t, sid, 2)

	page := a.ListOrders(1, 1)
	if page.TotalItems != 2 || len(page.Orders) != 1 || page.Orders[0].ID != first.ID {
		t.Fatalf("page = %+v", page)
	}

	st := a.Stats()
	// 10000 + 5000*0.9
	if st.Orders != 2 || st.Discounted != 1 || !st.Revenue.Equal(dec("14500")) {
		t.Fatalf("stats = %+v", st)
	}

	if err := a.DeleteOrder(first.Number); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := a.GetOrder(first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted order still found: %v", err)
	}
	if err := a.DeleteOrder(first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestEditFlowSave(t *testing.T) {
	e := newEnv(t)
	a := newAdmin(t, e)
	sid := e.signedIn(t, "0911")
	o := e.placeOrder(t, sid, 1)

	if _, err := a.UpdateDraftItem(o.ID, 0, ItemPatch{}); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("edit without draft: %v", err)
	}

	if _, err := a.BeginEdit(o.ID); err != nil {
		t.Fatal(err)
	}
	d, err := a.UpdateDraftItem(o.ID, 0, ItemPatch{Quantity: intp(2), Floor: intp(6)})
	if err != nil {
		t.Fatal(err)
	}
	// (10000 + 300) * 2
	if !d.Total.Equal(dec("20600")) {
		t.Fatalf("draft total = %s", d.Total)
	}

	price := decimal.NewFromInt(400)
	d, err = a.AddDraftItem(o.ID, NewItem{Name: "椅墊", Price: price})
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Items) != 2 || d.Items[1].Quantity != 1 || d.Items[1].Floor != 1 {
		t.Fatalf("new item %+v", d.Items)
	}
	if !d.Total.Equal(dec("21000")) {
		t.Fatalf("total after add = %s", d.Total)
	}

	d, err = a.UpdateDraftInfo(o.ID, DraftInfoPatch{DiscountApplied: boolp(true), DisposalMethod: strp(models.DisposalFree)})
	if err != nil {
		t.Fatal(err)
	}
	if !d.Total.Equal(dec("18900")) {
		t.Fatalf("discounted draft total = %s", d.Total)
	}

	if stored, _ := a.GetOrder(o.ID); !stored.Total.Equal(dec("10000")) {
		t.Fatalf("stored order changed before save: %s", stored.Total)
	}

	saved, err := a.Save(o.ID)
	if err != nil {
		t.Fatal(err)
	}
	stored, _ := a.GetOrder(o.ID)
	if !stored.Total.Equal(saved.Total) || len(stored.Items) != 2 || stored.DisposalMethod != models.DisposalFree {
		t.Fatalf("stored after save %+v", stored)
	}
	if _, err := a.Draft(o.ID); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("draft should be closed after save: %v", err)
	}
}

func TestEditFlowCancel(t *testing.T) {
	e := newEnv(t)
	a := newAdmin(t, e)
	o := e.placeOrder(t, e.signedIn(t, "0911"), 1, 2)

	a.BeginEdit(o.ID)
	d, err := a.RemoveDraftItem(o.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	d, err = a.RemoveDraftItem(o.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Items) != 0 || !d.Total.IsZero() {
		t.Fatalf("empty draft %+v", d)
	}

	back, err := a.Cancel(o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Items) != 2 || !back.Total.Equal(dec("15000")) {
		t.Fatalf("cancel should return the untouched order: %+v", back)
	}
	if _, err := a.Cancel(o.ID); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("second cancel: %v", err)
	}
}

func TestEditFlowValidation(t *testing.T) {
	e := newEnv(t)
	a := newAdmin(t, e)
	o := e.placeOrder(t, e.signedIn(t, "0911"), 1)
	a.BeginEdit(o.ID)

	zero := decimal.Zero
	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"bad index", func() error { _, err := a.UpdateDraftItem(o.ID, 3, ItemPatch{}); return err }, ErrNotFound},
		{"zero price", func() error { _, err := a.UpdateDraftItem(o.ID, 0, ItemPatch{Price: &zero}); return err }, ErrValidation},
		{"zero quantity", func() error { _, err := a.UpdateDraftItem(o.ID, 0, ItemPatch{Quantity: intp(0)}); return err }, ErrValidation},
		{"empty name", func() error { _, err := a.UpdateDraftItem(o.ID, 0, ItemPatch{Name: strp("")}); return err }, ErrValidation},
		{"new item without name", func() error { _, err := a.AddDraftItem(o.ID, NewItem{Price: dec("1")}); return err }, ErrValidation},
		{"new item without price", func() error { _, err := a.AddDraftItem(o.ID, NewItem{Name: "x"}); return err }, ErrValidation},
		{"bad payment", func() error { _, err := a.UpdateDraftInfo(o.ID, DraftInfoPatch{PaymentMethod: strp("gold")}); return err }, ErrValidation},
		{"unknown order", func() error { _, err := a.BeginEdit("nope"); return err }, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}

	d, _ := a.Draft(o.ID)
	if d.Items[0].Quantity != 1 || !d.Total.Equal(dec("10000")) {
		t.Fatalf("failed edits must leave the draft alone: %+v", d)
	}
}

func TestBeginEditTwiceKeepsDraft(t *testing.T) {
	e := newEnv(t)
	a := newAdmin(t, e)
	o := e.placeOrder(t, e.signedIn(t, "0911"), 1)

	a.BeginEdit(o.ID)
	a.UpdateDraftItem(o.ID, 0, ItemPatch{Quantity: intp(3)})
	d, err := a.BeginEdit(o.Number)
	if err != nil {
		t.Fatal(err)
	}
	if d.Items[0].Quantity != 3 {
		t.Fatalf("re-entering edit should return the open draft: %+v", d.Items[0])
	}
}

func strp(s string) *string { return &s }
