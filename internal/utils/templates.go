package utils

import (
	"bytes"
	"html/template"
	"strings"

	"furniture_back_end/internal/models"
	"furniture_back_end/internal/pricing"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.TraditionalChinese)

// FormatMoney renders an amount as "NT$ 20,400" (cents only when present).
func FormatMoney(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole := printer.Sprintf("NT$ %s%d", sign, d.IntPart())
	if d.Equal(d.Truncate(0)) {
		return whole
	}
	cents := d.Sub(d.Truncate(0)).StringFixed(2)
	return whole + strings.TrimPrefix(cents, "0")
}

type orderView struct {
	Order   *models.Order
	Summary pricing.Summary
	QR      template.URL
}

var orderFuncs = template.FuncMap{
	"money":    FormatMoney,
	"disposal": models.DisposalLabel,
	"join":     strings.Join,
	"lineSub": func(s pricing.Summary, i int) decimal.Decimal {
		if i < len(s.Lines) {
			return s.Lines[i].Subtotal
		}
		return decimal.Zero
	},
}

var orderTemplate = template.Must(template.New("order").Funcs(orderFuncs).Parse(`<!DOCTYPE html>
<html lang="zh-Hant">
<head>
<meta charset="UTF-8">
<title>訂單 {{.Order.Number}}</title>
<style>
body { font-family: "Noto Sans TC", Arial, sans-serif; background: #fff; margin: 0; padding: 24px; color: #222; }
h1 { font-size: 24px; margin: 0 0 16px; }
table { width: 100%; border-collapse: collapse; margin: 16px 0; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background: #f3f4f6; }
.total { font-size: 20px; font-weight: bold; }
.qr { float: right; }
</style>
</head>
<body>
<div id="order">
{{if .QR}}<img class="qr" src="{{.QR}}" width="120" height="120" alt="{{.Order.Number}}">{{end}}
<h1>訂單編號：{{.Order.Number}}</h1>
<p>收貨人：{{.Order.Customer.Name}}</p>
<p>電話：{{.Order.Customer.Phone}}</p>
<p>地址：{{.Order.Customer.Address}}</p>
{{if .Order.Customer.LineID}}<p>LINE ID：{{.Order.Customer.LineID}}</p>{{end}}
<table>
<thead><tr><th>商品</th><th>單價</th><th>數量</th><th>樓層</th><th>電梯</th><th>小計</th></tr></thead>
<tbody>
{{range $i, $it := .Order.Items}}<tr><td>{{$it.Name}}</td><td>{{money $it.Price}}</td><td>{{$it.Quantity}}</td><td>{{$it.Floor}}</td><td>{{if $it.HasElevator}}有{{else}}無{{end}}</td><td>{{money (lineSub $.Summary $i)}}</td></tr>
{{end}}</tbody>
</table>
<p>付款方式：{{.Order.PaymentMethod}}</p>
<p>收貨時間：{{join .Order.DeliveryTime ", "}}</p>
<p>需要處理的舊物品項：{{.Order.OldFurniture}}</p>
{{if .Order.DisposalMethod}}<p>舊物處理方式：{{disposal .Order.DisposalMethod}}</p>{{end}}
{{if .Order.DiscountApplied}}<p>折扣已應用：10% 優惠（-{{money .Summary.Discount}}）</p>{{end}}
<p class="total">總計：{{money .Order.Total}}</p>
</div>
</body>
</html>`))

// RenderOrderHTML renders the printable order page. qr may be empty.
func RenderOrderHTML(o *models.Order, qr string) (string, error) {
	view := orderView{
		Order:   o,
		Summary: pricing.Breakdown(o.Items, o.DiscountApplied),
		QR:      template.URL(qr),
	}
	var buf bytes.Buffer
	if err := orderTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
