// Package recipient implements the roster store over gorm.
package recipient

import (
	"context"
	"errors"

	"github.com/Wutche/payrail/infra/repository/model"
	"github.com/Wutche/payrail/pkg/dto"
	repo "github.com/Wutche/payrail/pkg/repository/recipient"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates the gorm-backed recipient roster.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements recipient.Repository.
func (r *repository) Create(ctx context.Context, create dto.RecipientCreate) error {
	id := create.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	row := model.Recipient{
		ID:           id,
		Address:      create.Address,
		DisplayName:  create.DisplayName,
		ContactEmail: create.ContactEmail,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// LookupByAddress implements recipient.Repository.
func (r *repository) LookupByAddress(ctx context.Context, address string) (*dto.RecipientRead, error) {
	var row model.Recipient
	err := r.db.WithContext(ctx).Where("address = ?", address).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapModelToReadDTO(&row), nil
}

// LookupByAddressFold implements recipient.Repository.
func (r *repository) LookupByAddressFold(ctx context.Context, address string) (*dto.RecipientRead, error) {
	var row model.Recipient
	err := r.db.WithContext(ctx).Where("LOWER(address) = LOWER(?)", address).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapModelToReadDTO(&row), nil
}

// List implements recipient.Repository.
func (r *repository) List(ctx context.Context) ([]*dto.RecipientRead, error) {
	var rows []model.Recipient
	if err := r.db.WithContext(ctx).Order("display_name").Find(&rows).Error; err != nil {
		return nil, err
	}
	reads := make([]*dto.RecipientRead, 0, len(rows))
	for i := range rows {
		reads = append(reads, mapModelToReadDTO(&rows[i]))
	}
	return reads, nil
}

func mapModelToReadDTO(row *model.Recipient) *dto.RecipientRead {
	return &dto.RecipientRead{
		ID:           row.ID,
		Address:      row.Address,
		DisplayName:  row.DisplayName,
		ContactEmail: row.ContactEmail,
	}
}
