// Package recipient exposes roster management over HTTP. The engine itself
// only reads the roster; these endpoints exist so an operator can register
// recipients before the first payroll run.
package recipient

import (
	"github.com/Wutche/payrail/pkg/dto"
	recipientrepo "github.com/Wutche/payrail/pkg/repository/recipient"
	"github.com/Wutche/payrail/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// NewRecipient registers a payroll recipient in the roster.
type NewRecipient struct {
	Address     string `json:"address" validate:"required"`
	DisplayName string `json:"display_name" validate:"required,max=100"`
	// ContactEmail may be empty: legs for such recipients are recorded
	// with notification skipped.
	ContactEmail string `json:"contact_email,omitempty" validate:"omitempty,email"`
}

// Routes registers the roster endpoints.
func Routes(app *fiber.App, roster recipientrepo.Repository) {
	app.Post("/recipients", CreateRecipient(roster))
	app.Get("/recipients", ListRecipients(roster))
	app.Get("/recipients/:address", GetRecipient(roster))
}

// CreateRecipient registers a roster entry.
func CreateRecipient(roster recipientrepo.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NewRecipient](c)
		if err != nil {
			return nil // Error already written by helper
		}
		create := dto.RecipientCreate{
			ID:           uuid.New(),
			Address:      input.Address,
			DisplayName:  input.DisplayName,
			ContactEmail: input.ContactEmail,
		}
		if err := roster.Create(c.Context(), create); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create recipient", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created recipient", create)
	}
}

// GetRecipient finds a roster entry by address, ignoring case.
func GetRecipient(roster recipientrepo.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		record, err := roster.LookupByAddressFold(c.Context(), c.Params("address"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Roster lookup failed", err)
		}
		if record == nil {
			return common.ProblemDetailsJSON(c, "No recipient on file", nil, fiber.StatusNotFound)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Recipient found", record)
	}
}

// ListRecipients returns the whole roster.
func ListRecipients(roster recipientrepo.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := roster.List(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Roster lookup failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Recipients found", records)
	}
}
