package entity

import "github.com/shopspring/decimal"

// MoneyScale decimales con que se persisten saldos, precios y recompensas (NUMERIC(18, 2)).
const MoneyScale = 2

// HasMoneyScale indica si d se almacena sin redondeo.
func HasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}
