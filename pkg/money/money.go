// Package money holds base-unit amount helpers for disbursement reporting.
//
// Settlement amounts are integers in the ledger's base unit (micro-units).
// USD figures are display-only: the exchange rate is always an explicit
// parameter supplied by the caller, never ambient state, because it has no
// bearing on settlement correctness.
package money

import (
	"fmt"
)

// BaseUnitsPerToken is the number of base units in one whole ledger token.
const BaseUnitsPerToken = 1_000_000

// FormatToken renders a base-unit amount as a whole-token decimal string,
// e.g. 1_250_000 -> "1.250000".
func FormatToken(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%06d", sign, amount/BaseUnitsPerToken, amount%BaseUnitsPerToken)
}

// FormatUSD renders the display value of a base-unit amount at the given
// rate (USD per whole token), e.g. 1_500_000 at 2.0 -> "$3.00".
func FormatUSD(amount int64, usdPerToken float64) string {
	usd := float64(amount) / BaseUnitsPerToken * usdPerToken
	return fmt.Sprintf("$%.2f", usd)
}
