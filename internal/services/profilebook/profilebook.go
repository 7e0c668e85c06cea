package profilebook

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/utage-jpg/profile/internal/db/repositories/card"
	"github.com/utage-jpg/profile/internal/db/repositories/relation"
	"github.com/utage-jpg/profile/internal/services/intimacy"
	"github.com/utage-jpg/profile/internal/services/levels"
)

var (
	ErrCardNotFound     = errors.New("card not found")
	ErrRelationNotFound = errors.New("relation not found")
	ErrInvalidType      = errors.New("unknown personality type code")
	ErrEmptyTagline     = errors.New("tagline must not be empty")
)

const (
	SortRecent   = "recent"
	SortIntimate = "intimate"
)

// CollectionFilter narrows and orders ListCollection output. Zero values mean
// no filtering; an empty Sort means SortRecent.
type CollectionFilter struct {
	TypeCode string
	Level    levels.Key
	Sort     string
}

// CollectionEntry pairs a relation with the card it references.
type CollectionEntry struct {
	Relation *relation.Relation
	Card     *card.Card
}

// Detail is everything the card detail view needs.
type Detail struct {
	Relation     *relation.Relation
	Card         *card.Card
	Level        levels.Level
	PointsToNext int
}

type Service interface {
	CreateCard(ctx context.Context, typeCode string, profile card.Profile) (*card.Card, error)
	GetCard(ctx context.Context, cardID string) (*card.Card, error)
	ListMyCards(ctx context.Context) ([]*card.Card, error)
	// AddCard is idempotent; the bool reports whether a new relation was created.
	AddCard(ctx context.Context, cardID string) (*relation.Relation, bool, error)
	RecordVisit(ctx context.Context, relationID string) (*relation.Relation, error)
	SaveMemo(ctx context.Context, relationID, text string) (*relation.Relation, error)
	// SweepTimePoints applies the elapsed-time rule to every relation and
	// returns how many were updated.
	SweepTimePoints(ctx context.Context) (int, error)
	ListCollection(ctx context.Context, filter CollectionFilter) ([]CollectionEntry, error)
	RelationDetail(ctx context.Context, relationID string) (*Detail, error)
}

type Impl struct {
	cards     card.CardRepository
	relations relation.RelationRepository
	engine    intimacy.Engine
	ownerID   string
}

// New wires the service to one local owner. The owner id is resolved once at
// startup and passed through every store operation explicitly.
func New(cards card.CardRepository, relations relation.RelationRepository, engine intimacy.Engine, ownerID string) Service {
	return &Impl{
		cards:     cards,
		relations: relations,
		engine:    engine,
		ownerID:   ownerID,
	}
}

func (s *Impl) CreateCard(ctx context.Context, typeCode string, profile card.Profile) (*card.Card, error) {
	typeCode = strings.ToUpper(strings.TrimSpace(typeCode))
	if !card.IsValidType(typeCode) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, typeCode)
	}
	if strings.TrimSpace(profile.Tagline) == "" {
		return nil, ErrEmptyTagline
	}

	c := &card.Card{
		ID:          uuid.NewString(),
		OwnerUserID: s.ownerID,
		Type:        typeCode,
		Profile:     profile,
	}
	if err := s.cards.CreateCard(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return c, nil
}

func (s *Impl) GetCard(ctx context.Context, cardID string) (*card.Card, error) {
	c, err := s.cards.GetCardByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load card: %w", err)
	}
	if c == nil {
		return nil, ErrCardNotFound
	}
	return c, nil
}

func (s *Impl) ListMyCards(ctx context.Context) ([]*card.Card, error) {
	cards, err := s.cards.ListCardsByOwner(ctx, s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

func (s *Impl) AddCard(ctx context.Context, cardID string) (*relation.Relation, bool, error) {
	existing, err := s.relations.GetRelationByCard(ctx, s.ownerID, cardID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check existing relation: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	c, err := s.cards.GetCardByID(ctx, cardID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load card: %w", err)
	}
	if c == nil {
		return nil, false, ErrCardNotFound
	}

	rel := &relation.Relation{
		ID:                 uuid.NewString(),
		OwnerUserID:        s.ownerID,
		ReceivedCardID:     c.ID,
		Memo:               "",
		IntimacyPoint:      0,
		IntimacyLevel:      string(levels.Seed),
		LastVisitedAtByDay: relation.DayLedger{},
	}
	if err := s.relations.CreateRelation(ctx, rel); err != nil {
		return nil, false, fmt.Errorf("failed to create relation: %w", err)
	}
	return rel, true, nil
}

func (s *Impl) RecordVisit(ctx context.Context, relationID string) (*relation.Relation, error) {
	rel, err := s.ownedRelation(ctx, relationID)
	if err != nil {
		return nil, err
	}

	res := s.engine.Apply(snapshotOf(rel), intimacy.ActionVisit, "")
	if res.IntimacyPoint > rel.IntimacyPoint {
		if err := s.commitIntimacy(ctx, rel, res); err != nil {
			return nil, err
		}
	}
	return rel, nil
}

func (s *Impl) SaveMemo(ctx context.Context, relationID, text string) (*relation.Relation, error) {
	rel, err := s.ownedRelation(ctx, relationID)
	if err != nil {
		return nil, err
	}

	// The memo text itself is always saved; points only accrue for the first
	// non-blank memo of the day.
	res := s.engine.Apply(snapshotOf(rel), intimacy.ActionMemo, text)
	if err := s.relations.UpdateMemo(ctx, rel.ID, text, res.IntimacyPoint, string(res.IntimacyLevel), relation.DayLedger(res.Ledger)); err != nil {
		if errors.Is(err, relation.ErrNotFound) {
			return nil, ErrRelationNotFound
		}
		return nil, fmt.Errorf("failed to save memo: %w", err)
	}

	rel.Memo = text
	applyResult(rel, res)
	return rel, nil
}

func (s *Impl) SweepTimePoints(ctx context.Context) (int, error) {
	rels, err := s.relations.ListRelationsByOwner(ctx, s.ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to list relations: %w", err)
	}

	updated := 0
	for _, rel := range rels {
		res := s.engine.Apply(snapshotOf(rel), intimacy.ActionTime, "")
		if res.IntimacyPoint <= rel.IntimacyPoint {
			continue
		}
		if err := s.commitIntimacy(ctx, rel, res); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

func (s *Impl) ListCollection(ctx context.Context, filter CollectionFilter) ([]CollectionEntry, error) {
	rels, err := s.relations.ListRelationsByOwner(ctx, s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list relations: %w", err)
	}

	entries := make([]CollectionEntry, 0, len(rels))
	for _, rel := range rels {
		c, err := s.cards.GetCardByID(ctx, rel.ReceivedCardID)
		if err != nil {
			return nil, fmt.Errorf("failed to load card: %w", err)
		}
		if c == nil {
			// Weak reference; skip relations whose card is gone.
			continue
		}
		if filter.TypeCode != "" && c.Type != filter.TypeCode {
			continue
		}
		if filter.Level != "" && rel.IntimacyLevel != string(filter.Level) {
			continue
		}
		entries = append(entries, CollectionEntry{Relation: rel, Card: c})
	}

	if filter.Sort == SortIntimate {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Relation.IntimacyPoint > entries[j].Relation.IntimacyPoint
		})
	} else {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Relation.CreatedAt.After(entries[j].Relation.CreatedAt)
		})
	}
	return entries, nil
}

func (s *Impl) RelationDetail(ctx context.Context, relationID string) (*Detail, error) {
	rel, err := s.ownedRelation(ctx, relationID)
	if err != nil {
		return nil, err
	}

	c, err := s.cards.GetCardByID(ctx, rel.ReceivedCardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load card: %w", err)
	}
	if c == nil {
		return nil, ErrCardNotFound
	}

	key := levels.Key(rel.IntimacyLevel)
	return &Detail{
		Relation:     rel,
		Card:         c,
		Level:        levels.Info(key),
		PointsToNext: levels.ToNext(rel.IntimacyPoint, key),
	}, nil
}

func (s *Impl) ownedRelation(ctx context.Context, relationID string) (*relation.Relation, error) {
	rel, err := s.relations.GetRelationByID(ctx, relationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load relation: %w", err)
	}
	if rel == nil || rel.OwnerUserID != s.ownerID {
		return nil, ErrRelationNotFound
	}
	return rel, nil
}

func (s *Impl) commitIntimacy(ctx context.Context, rel *relation.Relation, res intimacy.Result) error {
	err := s.relations.UpdateIntimacy(ctx, rel.ID, res.IntimacyPoint, string(res.IntimacyLevel), relation.DayLedger(res.Ledger))
	if err != nil {
		if errors.Is(err, relation.ErrNotFound) {
			return ErrRelationNotFound
		}
		return fmt.Errorf("failed to update intimacy: %w", err)
	}
	applyResult(rel, res)
	return nil
}

func snapshotOf(rel *relation.Relation) intimacy.Snapshot {
	return intimacy.Snapshot{
		IntimacyPoint: rel.IntimacyPoint,
		CreatedAt:     rel.CreatedAt,
		Ledger:        map[string]bool(rel.LastVisitedAtByDay),
	}
}

func applyResult(rel *relation.Relation, res intimacy.Result) {
	rel.IntimacyPoint = res.IntimacyPoint
	rel.IntimacyLevel = string(res.IntimacyLevel)
	rel.LastVisitedAtByDay = relation.DayLedger(res.Ledger)
}
