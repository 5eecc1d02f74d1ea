package disbursement

import (
	"time"

	"github.com/Wutche/payrail/pkg/domain/disbursement"
	"github.com/Wutche/payrail/pkg/dto"
)

// mapOutcome flattens a disbursement and its legs into the append-only
// record handed to the ledger store.
func mapOutcome(d *disbursement.Disbursement, recordedAt time.Time) dto.OutcomeCreate {
	legs := d.Legs()
	create := dto.OutcomeCreate{
		TxID:          d.TxID,
		Kind:          string(d.Kind),
		Status:        string(d.Status()),
		DeclaredTotal: d.DeclaredTotal,
		PeriodRef:     d.PeriodRef,
		Legs:          make([]dto.LegCreate, 0, len(legs)),
		RecordedAt:    recordedAt,
	}
	for _, leg := range legs {
		create.Legs = append(create.Legs, dto.LegCreate{
			ID:               leg.ID,
			RecipientAddress: leg.RecipientAddress,
			Amount:           leg.Amount,
			DisplayName:      leg.DisplayName,
			Notification:     string(leg.Notification),
			Degraded:         leg.Degraded,
		})
	}
	return create
}
