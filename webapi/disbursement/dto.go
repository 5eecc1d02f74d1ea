package disbursement

import (
	"github.com/Wutche/payrail/pkg/money"
	disbsvc "github.com/Wutche/payrail/pkg/service/disbursement"
)

// ReconcileRequest triggers a reconciliation pass for a freshly broadcast
// transaction. Amounts are in base units.
type ReconcileRequest struct {
	Kind          string `json:"kind" validate:"required,oneof=direct batch"`
	DeclaredTotal int64  `json:"declared_total" validate:"required,gt=0"`
	// PeriodRef correlates a batch to a pay period.
	PeriodRef string `json:"period_ref,omitempty"`
	// Recipient is the single recipient address of a direct disbursement.
	Recipient string `json:"recipient,omitempty"`
	// Overrides maps recipient address to a display name the caller
	// already knows.
	Overrides map[string]string `json:"overrides,omitempty"`
	// USDRate is the display exchange rate (USD per whole token) at
	// reconciliation time.
	USDRate float64 `json:"usd_rate,omitempty" validate:"omitempty,gt=0"`
}

// LegResponse is one recipient's share of a reconciled disbursement.
type LegResponse struct {
	ID               string `json:"id"`
	RecipientAddress string `json:"recipient_address"`
	Amount           int64  `json:"amount"`
	AmountFormatted  string `json:"amount_formatted"`
	DisplayName      string `json:"display_name"`
	Notification     string `json:"notification"`
	Degraded         bool   `json:"degraded,omitempty"`
}

// ReconcileResponse reports the terminal state of one reconciliation pass.
type ReconcileResponse struct {
	TxID    string        `json:"tx_id"`
	Status  string        `json:"status"`
	Outcome string        `json:"outcome"`
	Legs    []LegResponse `json:"legs,omitempty"`
}

func newReconcileResponse(result *disbsvc.Result) ReconcileResponse {
	resp := ReconcileResponse{
		TxID:    result.TxID,
		Status:  string(result.Status),
		Outcome: string(result.Outcome),
	}
	for _, leg := range result.Legs {
		resp.Legs = append(resp.Legs, LegResponse{
			ID:               leg.ID.String(),
			RecipientAddress: leg.RecipientAddress,
			Amount:           leg.Amount,
			AmountFormatted:  money.FormatToken(leg.Amount),
			DisplayName:      leg.DisplayName,
			Notification:     string(leg.Notification),
			Degraded:         leg.Degraded,
		})
	}
	return resp
}
