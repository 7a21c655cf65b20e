package models

import "github.com/shopspring/decimal"

func init() {
	// The front end reads prices and totals as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
