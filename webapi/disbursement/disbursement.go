// Package disbursement exposes the reconciliation engine over HTTP: the
// external trigger that drives a broadcast transaction to a recorded
// outcome, plus read endpoints over the ledger store.
package disbursement

import (
	"errors"

	domain "github.com/Wutche/payrail/pkg/domain/disbursement"
	disbrepo "github.com/Wutche/payrail/pkg/repository/disbursement"
	disbsvc "github.com/Wutche/payrail/pkg/service/disbursement"
	"github.com/Wutche/payrail/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the disbursement endpoints.
func Routes(app *fiber.App, svc *disbsvc.Service, ledger disbrepo.Repository) {
	app.Post("/disbursements/:txid/reconcile", Reconcile(svc))
	app.Get("/disbursements/:txid", GetDisbursement(ledger))
	app.Get("/disbursements", ListByPeriod(ledger))
}

// Reconcile drives one freshly broadcast disbursement to a recorded
// outcome. The call blocks for the duration of the confirmation poll, so
// the caller is expected to be a scheduler or job runner, not a browser.
func Reconcile(svc *disbsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ReconcileRequest](c)
		if err != nil {
			return nil // Error already written by helper
		}
		builder := domain.New(c.Params("txid")).
			WithKind(domain.Kind(input.Kind)).
			WithDeclaredTotal(input.DeclaredTotal)
		if input.PeriodRef != "" {
			builder = builder.WithPeriodRef(input.PeriodRef)
		}
		if input.Recipient != "" {
			builder = builder.WithRecipient(input.Recipient)
		}
		d, err := builder.Build()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid disbursement", err, fiber.StatusBadRequest)
		}
		result, err := svc.Reconcile(c.Context(), d, disbsvc.ReconcileParams{
			Overrides: input.Overrides,
			USDRate:   input.USDRate,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				return common.ProblemDetailsJSON(c, "Conflicting disbursement state", err, fiber.StatusConflict)
			}
			return common.ProblemDetailsJSON(c, "Reconciliation failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Reconciliation recorded", newReconcileResponse(result))
	}
}

// GetDisbursement retrieves a recorded disbursement with its legs.
func GetDisbursement(ledger disbrepo.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		record, err := ledger.Get(c.Context(), c.Params("txid"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Ledger lookup failed", err)
		}
		if record == nil {
			return common.ProblemDetailsJSON(c, "No disbursement recorded", nil, fiber.StatusNotFound)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Disbursement found", record)
	}
}

// ListByPeriod lists recorded disbursements for a pay period.
func ListByPeriod(ledger disbrepo.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period")
		if period == "" {
			return common.ProblemDetailsJSON(c, "Missing period", nil, "query parameter period is required", fiber.StatusBadRequest)
		}
		records, err := ledger.ListByPeriod(c.Context(), period)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Ledger lookup failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Disbursements found", records)
	}
}
