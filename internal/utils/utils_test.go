package utils

import (
	"strings"
	"testing"
	"time"

	"furniture_back_end/internal/config"
	"furniture_back_end/internal/models"

	"github.com/shopspring/decimal"
)

func TestAdminJWT(t *testing.T) {
	token, claims, err := GenerateAdminJWT("secret", "admin", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if claims.ID == "" {
		t.Fatal("token id missing")
	}

	parsed, err := ParseAdminJWT("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Subject != "admin" || parsed.Role != RoleAdmin || parsed.ID != claims.ID {
		t.Fatalf("claims = %+v", parsed)
	}

	if _, err := ParseAdminJWT("other", token); err == nil {
		t.Fatal("token signed with another secret accepted")
	}

	expired, _, _ := GenerateAdminJWT("secret", "admin", -time.Minute)
	if _, err := ParseAdminJWT("secret", expired); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword(hash, "s3cret") {
		t.Fatal("right password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}

func TestFormatMoney(t *testing.T) {
	tests := map[string]string{
		"0":       "NT$ 0",
		"20400":   "NT$ 20,400",
		"4545.91": "NT$ 4,545.91",
		"13545.9": "NT$ 13,545.90",
		"1000000": "NT$ 1,000,000",
		"-0.50":   "NT$ -0.50",
		"-1234.5": "NT$ -1,234.50",
		"-0.001":  "NT$ 0",
	}
	for in, want := range tests {
		if got := FormatMoney(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatMoney(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderOrderHTML(t *testing.T) {
	o := &models.Order{
		Number:         "2024050614300911",
		Customer:       models.CustomerDetails{Name: "<b>王</b>", Phone: "0911", Address: "台北市"},
		PaymentMethod:  models.PaymentCard,
		DeliveryTime:   []string{"平日", "晚上"},
		OldFurniture:   "舊床",
		DisposalMethod: models.DisposalPaid,
		Items: []models.LineItem{
			{ProductID: 1, Name: "產品 1", Price: decimal.NewFromInt(10000), Quantity: 1, Floor: 5},
		},
		DiscountApplied: true,
		Total:           decimal.RequireFromString("9180"),
	}
	qr, err := QRDataURI(o.Number, 64)
	if err != nil {
		t.Fatal(err)
	}
	html, err := RenderOrderHTML(o, qr)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"2024050614300911",
		"&lt;b&gt;王&lt;/b&gt;",
		"平日, 晚上",
		"(自費)由送貨人員代清運",
		"NT$ 10,200",
		"NT$ 9,180",
		"10% 優惠",
		`src="data:image/png;base64,`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page lacks %q", want)
		}
	}
}

func TestNewMailerDisabledWithoutHost(t *testing.T) {
	m, err := NewMailer(config.SMTPConfig{})
	if err != nil || m != nil {
		t.Fatalf("expected nil mailer, got %v, %v", m, err)
	}
	if _, err := NewMailer(config.SMTPConfig{Host: "smtp.example.com", Port: 587}); err == nil {
		t.Fatal("missing shop address should be rejected")
	}
}
