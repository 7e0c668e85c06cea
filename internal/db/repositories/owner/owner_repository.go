package owner

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/utage-jpg/profile/internal/db"
	"gorm.io/gorm"
)

/*
MODEL
*/

// Owner is the single local identity of this storage instance. One row per
// device; created lazily on first use.
type Owner struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Owner) TableName() string {
	return "owners"
}

/*
REPOSITORY INTERFACE
*/

type OwnerRepository interface {
	GetOrCreateOwner(ctx context.Context) (*Owner, error)
}

/*
REPOSITORY IMPL
*/

type OwnerRepositoryImpl struct {
	db *db.DB
}

func NewOwnerRepository(database *db.DB) OwnerRepository {
	return &OwnerRepositoryImpl{db: database}
}

func (r *OwnerRepositoryImpl) GetOrCreateOwner(ctx context.Context) (*Owner, error) {
	var o Owner
	err := r.db.DB.WithContext(ctx).Order("created_at ASC").First(&o).Error
	if err == nil {
		return &o, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	o = Owner{ID: uuid.NewString()}
	if err := r.db.DB.WithContext(ctx).Create(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}
