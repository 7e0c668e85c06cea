package relation

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/utage-jpg/profile/internal/db"
	"gorm.io/gorm"
)

// ErrNotFound is returned by updates addressed to an unknown relation id.
var ErrNotFound = errors.New("relation not found")

/*
MODEL
*/

// DayLedger maps opaque day-bucket keys to an "already awarded" marker.
// Keys are produced only by the intimacy engine; callers never rebuild them.
type DayLedger map[string]bool

func (l DayLedger) Value() (driver.Value, error) {
	if l == nil {
		l = DayLedger{}
	}
	return json.Marshal(l)
}

func (l *DayLedger) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = DayLedger{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported ledger column type %T", value)
	}
}

// Relation is one owner's record of having added someone else's card.
// At most one row per (owner_user_id, received_card_id).
type Relation struct {
	ID                 string    `gorm:"column:id;type:uuid;primaryKey" json:"relationId"`
	OwnerUserID        string    `gorm:"column:owner_user_id;type:uuid;not null;uniqueIndex:idx_relations_owner_card,priority:1" json:"ownerUserId"`
	ReceivedCardID     string    `gorm:"column:received_card_id;type:uuid;not null;uniqueIndex:idx_relations_owner_card,priority:2" json:"receivedCardId"`
	Memo               string    `gorm:"column:memo;type:text;not null;default:''" json:"memo"`
	IntimacyPoint      int       `gorm:"column:intimacy_point;type:int;not null;default:0" json:"intimacyPoint"`
	IntimacyLevel      string    `gorm:"column:intimacy_level;type:varchar(16);not null;default:'seed'" json:"intimacyLevel"`
	LastVisitedAtByDay DayLedger `gorm:"column:last_visited_at_by_day;type:jsonb;not null;default:'{}'" json:"lastVisitedAtByDay"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Relation) TableName() string {
	return "relations"
}

/*
REPOSITORY INTERFACE
*/

type RelationRepository interface {
	CreateRelation(ctx context.Context, relation *Relation) error
	// GetRelationByID returns nil, nil when no relation exists for the id.
	GetRelationByID(ctx context.Context, id string) (*Relation, error)
	// GetRelationByCard returns nil, nil when the owner has not added the card.
	GetRelationByCard(ctx context.Context, ownerID, cardID string) (*Relation, error)
	ListRelationsByOwner(ctx context.Context, ownerID string) ([]*Relation, error)

	// Intimacy fields are only ever written together, from an engine result.
	UpdateIntimacy(ctx context.Context, id string, point int, level string, ledger DayLedger) error
	UpdateMemo(ctx context.Context, id string, memo string, point int, level string, ledger DayLedger) error
}

/*
REPOSITORY IMPL
*/

type RelationRepositoryImpl struct {
	db *db.DB
}

func NewRelationRepository(database *db.DB) RelationRepository {
	return &RelationRepositoryImpl{db: database}
}

func (r *RelationRepositoryImpl) CreateRelation(ctx context.Context, relation *Relation) error {
	if relation.LastVisitedAtByDay == nil {
		relation.LastVisitedAtByDay = DayLedger{}
	}
	return r.db.DB.WithContext(ctx).Create(relation).Error
}

func (r *RelationRepositoryImpl) GetRelationByID(ctx context.Context, id string) (*Relation, error) {
	var rel Relation
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&rel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rel, nil
}

func (r *RelationRepositoryImpl) GetRelationByCard(ctx context.Context, ownerID, cardID string) (*Relation, error) {
	var rel Relation
	err := r.db.DB.WithContext(ctx).
		Where("owner_user_id = ? AND received_card_id = ?", ownerID, cardID).
		First(&rel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rel, nil
}

func (r *RelationRepositoryImpl) ListRelationsByOwner(ctx context.Context, ownerID string) ([]*Relation, error) {
	var relations []*Relation
	if err := r.db.DB.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&relations).Error; err != nil {
		return nil, err
	}
	return relations, nil
}

func (r *RelationRepositoryImpl) UpdateIntimacy(ctx context.Context, id string, point int, level string, ledger DayLedger) error {
	res := r.db.DB.WithContext(ctx).
		Model(&Relation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"intimacy_point":         point,
			"intimacy_level":         level,
			"last_visited_at_by_day": ledger,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RelationRepositoryImpl) UpdateMemo(ctx context.Context, id string, memo string, point int, level string, ledger DayLedger) error {
	res := r.db.DB.WithContext(ctx).
		Model(&Relation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"memo":                   memo,
			"intimacy_point":         point,
			"intimacy_level":         level,
			"last_visited_at_by_day": ledger,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
