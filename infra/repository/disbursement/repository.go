// Package disbursement implements the append-only ledger store over gorm.
package disbursement

import (
	"context"
	"errors"

	"github.com/Wutche/payrail/infra/repository/model"
	domain "github.com/Wutche/payrail/pkg/domain/disbursement"
	"github.com/Wutche/payrail/pkg/dto"
	repo "github.com/Wutche/payrail/pkg/repository/disbursement"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// statusRank orders lifecycle states so a recorded status only ever moves
// forward. Both terminal states share the top rank, so neither can
// overwrite the other.
var statusRank = map[string]int{
	string(domain.StatusBroadcast): 0,
	string(domain.StatusPolling):   1,
	string(domain.StatusTimedOut):  2,
	string(domain.StatusConfirmed): 3,
	string(domain.StatusExpanded):  4,
	string(domain.StatusNotified):  5,
	string(domain.StatusFailed):    5,
}

// statusesBelow returns the statuses a row may hold and still be advanced
// to the given one.
func statusesBelow(status string) []string {
	rank, ok := statusRank[status]
	if !ok {
		return nil
	}
	below := make([]string, 0, len(statusRank))
	for s, r := range statusRank {
		if r < rank {
			below = append(below, s)
		}
	}
	return below
}

type repository struct {
	db *gorm.DB
}

// New creates the gorm-backed ledger store.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// RecordOutcome implements disbursement.Repository. The disbursement row
// conflicts on tx_id; its status and recording time advance only when the
// incoming status ranks ahead of the stored one, so a replayed inconclusive
// record can never regress a terminal row. Leg rows conflict on their
// deterministic id and are inserted at most once.
func (r *repository) RecordOutcome(ctx context.Context, outcome dto.OutcomeCreate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := model.Disbursement{
			TxID:          outcome.TxID,
			Kind:          outcome.Kind,
			Status:        outcome.Status,
			DeclaredTotal: outcome.DeclaredTotal,
			PeriodRef:     outcome.PeriodRef,
			RecordedAt:    outcome.RecordedAt,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tx_id"}},
			DoNothing: true,
		}).Create(&row).Error; err != nil {
			return err
		}
		if below := statusesBelow(outcome.Status); len(below) > 0 {
			err := tx.Model(&model.Disbursement{}).
				Where("tx_id = ? AND status IN ?", outcome.TxID, below).
				Updates(map[string]any{
					"status":      outcome.Status,
					"recorded_at": outcome.RecordedAt,
				}).Error
			if err != nil {
				return err
			}
		}

		// A leg row is written once; only its notification state may
		// advance, and only out of a retryable state, so a replay can
		// record a successful retry without ever reverting a dispatched
		// leg back to pending.
		retryable := []string{
			string(domain.NotificationNotSent),
			string(domain.NotificationFailed),
		}
		for _, leg := range outcome.Legs {
			legRow := model.DisbursementLeg{
				ID:               leg.ID,
				DisbursementTxID: outcome.TxID,
				RecipientAddress: leg.RecipientAddress,
				Amount:           leg.Amount,
				DisplayName:      leg.DisplayName,
				Notification:     leg.Notification,
				Degraded:         leg.Degraded,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"notification", "display_name"}),
				Where: clause.Where{Exprs: []clause.Expression{
					clause.Expr{SQL: "disbursement_legs.notification IN ?", Vars: []any{retryable}},
				}},
			}).Create(&legRow).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Get implements disbursement.Repository.
func (r *repository) Get(ctx context.Context, txID string) (*dto.DisbursementRead, error) {
	var row model.Disbursement
	err := r.db.WithContext(ctx).
		Preload("Legs").
		Where("tx_id = ?", txID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapModelToReadDTO(&row), nil
}

// ListByPeriod implements disbursement.Repository.
func (r *repository) ListByPeriod(ctx context.Context, periodRef string) ([]*dto.DisbursementRead, error) {
	var rows []model.Disbursement
	err := r.db.WithContext(ctx).
		Preload("Legs").
		Where("period_ref = ?", periodRef).
		Order("recorded_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	reads := make([]*dto.DisbursementRead, 0, len(rows))
	for i := range rows {
		reads = append(reads, mapModelToReadDTO(&rows[i]))
	}
	return reads, nil
}

func mapModelToReadDTO(row *model.Disbursement) *dto.DisbursementRead {
	read := &dto.DisbursementRead{
		TxID:          row.TxID,
		Kind:          row.Kind,
		Status:        row.Status,
		DeclaredTotal: row.DeclaredTotal,
		PeriodRef:     row.PeriodRef,
		RecordedAt:    row.RecordedAt,
		Legs:          make([]dto.LegRead, 0, len(row.Legs)),
	}
	for _, leg := range row.Legs {
		read.Legs = append(read.Legs, dto.LegRead{
			ID:               leg.ID,
			RecipientAddress: leg.RecipientAddress,
			Amount:           leg.Amount,
			DisplayName:      leg.DisplayName,
			Notification:     leg.Notification,
			Degraded:         leg.Degraded,
		})
	}
	return read
}
