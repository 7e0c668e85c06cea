package card

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

/*
MODEL
*/

// TraitSelection is one section of a profile: chosen presets plus one free entry.
type TraitSelection struct {
	Preset []string `json:"preset"`
	Free   string   `json:"free"`
}

// Profile is the published content of a card.
type Profile struct {
	Tagline  string         `json:"tagline"`
	Likes    TraitSelection `json:"likes"`
	Dislikes TraitSelection `json:"dislikes"`
	Habits   TraitSelection `json:"relationshipHabits"`
}

func (p Profile) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Profile) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = Profile{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported profile column type %T", value)
	}
}

// Card is a published personality profile. Immutable after creation.
type Card struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey" json:"cardId"`
	OwnerUserID string    `gorm:"column:owner_user_id;type:uuid;not null;index:idx_cards_owner" json:"ownerUserId"`
	Type        string    `gorm:"column:type;type:varchar(4);not null" json:"type"`
	Profile     Profile   `gorm:"column:profile;type:jsonb;not null" json:"profileData"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Card) TableName() string {
	return "cards"
}

// TypeCodes is the fixed 16-type taxonomy.
var TypeCodes = []string{
	"INTJ", "INTP", "ENTJ", "ENTP",
	"INFJ", "INFP", "ENFJ", "ENFP",
	"ISTJ", "ISFJ", "ESTJ", "ESFJ",
	"ISTP", "ISFP", "ESTP", "ESFP",
}

func IsValidType(code string) bool {
	for _, t := range TypeCodes {
		if t == code {
			return true
		}
	}
	return false
}

/*
REPOSITORY INTERFACE
*/

type CardRepository interface {
	CreateCard(ctx context.Context, card *Card) error
	// GetCardByID returns nil, nil when no card exists for the id.
	GetCardByID(ctx context.Context, id string) (*Card, error)
	ListCardsByOwner(ctx context.Context, ownerID string) ([]*Card, error)
}

/*
REPOSITORY IMPL
*/

type CardRepositoryImpl struct {
	db *db.DB
}

func NewCardRepository(database *db.DB) CardRepository {
	return &CardRepositoryImpl{db: database}
}

func (r *CardRepositoryImpl) CreateCard(ctx context.Context, card *Card) error {
	return r.db.DB.WithContext(ctx).Create(card).Error
}

func (r *CardRepositoryImpl) GetCardByID(ctx context.Context, id string) (*Card, error) {
	var c Card
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CardRepositoryImpl) ListCardsByOwner(ctx context.Context, ownerID string) ([]*Card, error) {
	var cards []*Card
	if err := r.db.DB.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}
