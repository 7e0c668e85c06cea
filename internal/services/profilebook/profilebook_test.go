package profilebook

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/utage-jpg/profile/internal/db/repositories/card"
	cardmocks "github.com/utage-jpg/profile/internal/db/repositories/card/mocks"
	"github.com/utage-jpg/profile/internal/db/repositories/relation"
	relationmocks "github.com/utage-jpg/profile/internal/db/repositories/relation/mocks"
	"github.com/utage-jpg/profile/internal/services/intimacy"
	"github.com/utage-jpg/profile/internal/services/levels"
)

const (
	testOwnerID    = "11111111-1111-4111-8111-111111111111"
	testCardID     = "22222222-2222-4222-8222-222222222222"
	testRelationID = "33333333-3333-4333-8333-333333333333"
)

var testNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (Service, *cardmocks.MockCardRepository, *relationmocks.MockRelationRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	cards := cardmocks.NewMockCardRepository(ctrl)
	relations := relationmocks.NewMockRelationRepository(ctrl)
	engine := intimacy.NewWithClock(time.UTC, func() time.Time { return testNow })
	return New(cards, relations, engine, testOwnerID), cards, relations
}

func testProfile() card.Profile {
	return card.Profile{
		Tagline: "よろしくおねがいします",
		Likes:   card.TraitSelection{Preset: []string{"一人の時間"}, Free: "静かな夜"},
	}
}

func TestCreateCard(t *testing.T) {
	svc, cards, _ := newTestService(t)
	ctx := context.Background()

	var created *card.Card
	cards.EXPECT().
		CreateCard(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c *card.Card) error {
			created = c
			return nil
		})

	c, err := svc.CreateCard(ctx, "intj", testProfile())
	if err != nil {
		t.Fatalf("CreateCard: %v", err)
	}
	if c.Type != "INTJ" {
		t.Errorf("type = %q, want normalized INTJ", c.Type)
	}
	if c.OwnerUserID != testOwnerID {
		t.Errorf("owner = %q, want %q", c.OwnerUserID, testOwnerID)
	}
	if c.ID == "" {
		t.Error("card id was not assigned")
	}
	if created != c {
		t.Error("persisted card differs from returned card")
	}
}

func TestCreateCardValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateCard(ctx, "ABCD", testProfile()); !errors.Is(err, ErrInvalidType) {
		t.Errorf("unknown type: err = %v, want ErrInvalidType", err)
	}
	if _, err := svc.CreateCard(ctx, "INTJ", card.Profile{Tagline: "  "}); !errors.Is(err, ErrEmptyTagline) {
		t.Errorf("blank tagline: err = %v, want ErrEmptyTagline", err)
	}
}

func TestGetCardNotFound(t *testing.T) {
	svc, cards, _ := newTestService(t)
	ctx := context.Background()

	cards.EXPECT().GetCardByID(ctx, testCardID).Return(nil, nil)

	if _, err := svc.GetCard(ctx, testCardID); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("err = %v, want ErrCardNotFound", err)
	}
}

func TestListMyCards(t *testing.T) {
	svc, cards, _ := newTestService(t)
	ctx := context.Background()

	mine := []*card.Card{{ID: testCardID, OwnerUserID: testOwnerID, Type: "ISTJ"}}
	cards.EXPECT().ListCardsByOwner(ctx, testOwnerID).Return(mine, nil)

	got, err := svc.ListMyCards(ctx)
	if err != nil {
		t.Fatalf("ListMyCards: %v", err)
	}
	if len(got) != 1 || got[0].ID != testCardID {
		t.Errorf("got %v", got)
	}
}

func TestAddCardCreatesRelation(t *testing.T) {
	svc, cards, relations := newTestService(t)
	ctx := context.Background()

	relations.EXPECT().GetRelationByCard(ctx, testOwnerID, testCardID).Return(nil, nil)
	cards.EXPECT().GetCardByID(ctx, testCardID).Return(&card.Card{ID: testCardID, Type: "ENFP"}, nil)

	var created *relation.Relation
	relations.EXPECT().
		CreateRelation(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, rel *relation.Relation) error {
			created = rel
			return nil
		})

	rel, isNew, err := svc.AddCard(ctx, testCardID)
	if err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	if !isNew {
		t.Error("isNew = false, want true")
	}
	if rel != created {
		t.Error("returned relation differs from the persisted one")
	}
	if rel.IntimacyPoint != 0 || rel.IntimacyLevel != string(levels.Seed) {
		t.Errorf("new relation starts at %d %q, want 0 seed", rel.IntimacyPoint, rel.IntimacyLevel)
	}
	if rel.LastVisitedAtByDay == nil || len(rel.LastVisitedAtByDay) != 0 {
		t.Errorf("new relation ledger = %v, want empty", rel.LastVisitedAtByDay)
	}
}

func TestAddCardIsIdempotent(t *testing.T) {
	svc, _, relations := newTestService(t)
	ctx := context.Background()

	existing := &relation.Relation{ID: testRelationID, OwnerUserID: testOwnerID, ReceivedCardID: testCardID}
	relations.EXPECT().GetRelationByCard(ctx, testOwnerID, testCardID).Return(existing, nil)

	rel, isNew, err := svc.AddCard(ctx, testCardID)
	if err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	if isNew {
		t.Error("isNew = true for an already-added card")
	}
	if rel != existing {
		t.Error("expected the existing relation back")
	}
}

func TestAddCardNotFound(t *testing.T) {
	svc, cards, relations := newTestService(t)
	ctx := context.Background()

	relations.EXPECT().GetRelationByCard(ctx, testOwnerID, testCardID).Return(nil, nil)
	cards.EXPECT().GetCardByID(ctx, testCardID).Return(nil, nil)

	if _, _, err := svc.AddCard(ctx, testCardID); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("err = %v, want ErrCardNotFound", err)
	}
}

func TestRecordVisitAwardsOncePerDay(t *testing.T) {
	svc, _, relations := newTestService(t)
	ctx := context.Background()

	rel := &relation.Relation{
		ID:                 testRelationID,
		OwnerUserID:        testOwnerID,
		IntimacyPoint:      0,
		IntimacyLevel:      string(levels.Seed),
		LastVisitedAtByDay: relation.DayLedger{},
	}

	relations.EXPECT().GetRelationByID(ctx, testRelationID).Return(rel, nil)
	relations.EXPECT().
		UpdateIntimacy(ctx, testRelationID, 1, string(levels.Seed), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ int, _ string, ledger relation.DayLedger) error {
			if !ledger["2025-09-01"] {
				t.Errorf("visit day key missing from persisted ledger: %v", ledger)
			}
			return nil
		})

	got, err := svc.RecordVisit(ctx, testRelationID)
	if err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}
	if got.IntimacyPoint != 1 {
		t.Errorf("points = %d, want 1", got.IntimacyPoint)
	}

	// Second visit the same day: the engine awards nothing, so no update call.
	relations.EXPECT().GetRelationByID(ctx, testRelationID).Return(got, nil)
	again, err := svc.RecordVisit(ctx, testRelationID)
	if err != nil {
		t.Fatalf("RecordVisit (second): %v", err)
	}
	if again.IntimacyPoint != 1 {
		t.Errorf("second visit points = %d, want 1", again.IntimacyPoint)
	}
}

func TestRecordVisitUnknownRelation(t *testing.T) {
	svc, _, relations := newTestService(t)
	ctx := context.Background()

	relations.EXPECT().GetRelationByID(ctx, testRelationID).Return(nil, nil)

	if _, err := svc.RecordVisit(ctx, testRelationID); !errors.Is(err, ErrRelationNotFound) {
		t.Errorf("err = %v, want ErrRelationNotFound", err)
	}
}

func TestRecordVisitForeignRelation(t *testing.T) {
	svc, _, relations := newTestService(t)
	ctx := context.Background()

	foreign := &relation.Relation{ID: testRelationID, OwnerUserID: "someone-else"}
	relations.EXPECT().GetRelationByID(ctx, testRelationID).Return(foreign, nil)

	if _, err := svc.RecordVisit(ctx, testRelationID); !errors.Is(err, ErrRelationNotFound) {
		t.Errorf("err = %v, want ErrRelationNotFound", err)
	}
}

func TestSaveMemoPersistsTextAndPoints(t *testing.T) {
	svc, _, relations := newTestService(t)
	ctx := context.Background()

	rel := &relation.Relation{
		ID:                 testRelationID,
		OwnerUserID:        testOwnerID,
		IntimacyPoint:      2,
		IntimacyLevel:      string(levels.Seed),
		LastVisitedAtByDay: relation.DayLedger{},
	}

	relations.EXPECT().GetRelationByID(ctx, testRelationID).Return(rel, nil)
	relations.EXPECT().
		UpdateMemo(ctx, testRelationID, "優しい人だった", 4, string(levels.Sprout), gomock.Any()).
		Return(nil)

	got, err := svc.SaveMemo(ctx, testRelationID, "優しい人だった")
	if err != nil {
		t.Fatalf("SaveMemo: %v", err)
	}
	if got.Memo != "優しい人だった" {
		t.Errorf("memo = %q", got.Memo)
	}
	if got.IntimacyPoint != 4 || got.IntimacyLevel != string(levels.Sprout) {
		t.Errorf("got %d %q, want 4 sprout", got.IntimacyPoint, got.IntimacyLevel)
	}
}

func TestSaveMemoBlankTextStillSaved(t *testing.T) {
	svc, _, relations := newTestService(t)
	ctx := context.Background()

	rel := &relation.Relation{
		ID:                 testRelationID,
		OwnerUserID:        testOwnerID,
		IntimacyPoint:      1,
		IntimacyLevel:      string(levels.Seed),
		LastVisitedAtByDay: relation.DayLedger{},
	}

	relations.EXPECT().GetRelationByID(ctx, testRelationID).Return(rel, nil)
	// Blank memo: no points, but the text write still happens.
	relations.EXPECT().
		UpdateMemo(ctx, testRelationID, "  ", 1, string(levels.Seed), gomock.Any()).
		Return(nil)

	got, err := svc.SaveMemo(ctx, testRelationID, "  ")
	if err != nil {
		t.Fatalf("SaveMemo: %v", err)
	}
	if got.IntimacyPoint != 1 {
		t.Errorf("points = %d, want unchanged 1", got.IntimacyPoint)
	}
}

func TestSweepTimePoints(t *testing.T) {
	svc, _, relations := newTestService(t)
	ctx := context.Background()

	young := &relation.Relation{
		ID:                 "a0000000-0000-4000-8000-000000000001",
		OwnerUserID:        testOwnerID,
		CreatedAt:          testNow.Add(-2 * 24 * time.Hour),
		LastVisitedAtByDay: relation.DayLedger{},
	}
	due := &relation.Relation{
		ID:                 "a0000000-0000-4000-8000-000000000002",
		OwnerUserID:        testOwnerID,
		IntimacyPoint:      5,
		IntimacyLevel:      string(levels.Sprout),
		CreatedAt:          testNow.Add(-9 * 24 * time.Hour),
		LastVisitedAtByDay: relation.DayLedger{},
	}
	claimed := &relation.Relation{
		ID:                 "a0000000-0000-4000-8000-000000000003",
		OwnerUserID:        testOwnerID,
		IntimacyPoint:      1,
		IntimacyLevel:      string(levels.Seed),
		CreatedAt:          testNow.Add(-9 * 24 * time.Hour),
		LastVisitedAtByDay: relation.DayLedger{"time_1": true},
	}

	relations.EXPECT().ListRelationsByOwner(ctx, testOwnerID).
		Return([]*relation.Relation{young, due, claimed}, nil)
	// Only "due" is updated; 5+1 crosses into tree.
	relations.EXPECT().
		UpdateIntimacy(ctx, due.ID, 6, string(levels.Tree), gomock.Any()).
		Return(nil)

	updated, err := svc.SweepTimePoints(ctx)
	if err != nil {
		t.Fatalf("SweepTimePoints: %v", err)
	}
	if updated != 1 {
		t.Errorf("updated = %d, want 1", updated)
	}
}

func TestListCollectionFiltersAndSorts(t *testing.T) {
	svc, cards, relations := newTestService(t)
	ctx := context.Background()

	cardA := &card.Card{ID: "b0000000-0000-4000-8000-00000000000a", Type: "INTJ", Profile: card.Profile{Tagline: "a"}}
	cardB := &card.Card{ID: "b0000000-0000-4000-8000-00000000000b", Type: "ENFP", Profile: card.Profile{Tagline: "b"}}

	relA := &relation.Relation{ID: "c000000a", OwnerUserID: testOwnerID, ReceivedCardID: cardA.ID,
		IntimacyPoint: 2, IntimacyLevel: string(levels.Seed), CreatedAt: testNow.Add(-time.Hour)}
	relB := &relation.Relation{ID: "c000000b", OwnerUserID: testOwnerID, ReceivedCardID: cardB.ID,
		IntimacyPoint: 7, IntimacyLevel: string(levels.Tree), CreatedAt: testNow.Add(-2 * time.Hour)}
	orphan := &relation.Relation{ID: "c000000c", OwnerUserID: testOwnerID, ReceivedCardID: "b0000000-0000-4000-8000-00000000000c"}

	relations.EXPECT().ListRelationsByOwner(ctx, testOwnerID).
		Return([]*relation.Relation{relA, relB, orphan}, nil).
		Times(3)
	cards.EXPECT().GetCardByID(ctx, cardA.ID).Return(cardA, nil).Times(3)
	cards.EXPECT().GetCardByID(ctx, cardB.ID).Return(cardB, nil).Times(3)
	cards.EXPECT().GetCardByID(ctx, orphan.ReceivedCardID).Return(nil, nil).Times(3)

	// Default sort: newest first, orphaned relation skipped.
	entries, err := svc.ListCollection(ctx, CollectionFilter{})
	if err != nil {
		t.Fatalf("ListCollection: %v", err)
	}
	if len(entries) != 2 || entries[0].Relation.ID != relA.ID {
		t.Errorf("recent sort: got %d entries, first %v", len(entries), entries[0].Relation.ID)
	}

	// Intimate sort puts the 7pt relation first.
	entries, err = svc.ListCollection(ctx, CollectionFilter{Sort: SortIntimate})
	if err != nil {
		t.Fatalf("ListCollection: %v", err)
	}
	if entries[0].Relation.ID != relB.ID {
		t.Errorf("intimate sort: first = %v, want %v", entries[0].Relation.ID, relB.ID)
	}

	// Type filter.
	entries, err = svc.ListCollection(ctx, CollectionFilter{TypeCode: "INTJ"})
	if err != nil {
		t.Fatalf("ListCollection: %v", err)
	}
	if len(entries) != 1 || entries[0].Card.Type != "INTJ" {
		t.Errorf("type filter: got %v", entries)
	}
}

func TestRelationDetail(t *testing.T) {
	svc, cards, relations := newTestService(t)
	ctx := context.Background()

	rel := &relation.Relation{
		ID:             testRelationID,
		OwnerUserID:    testOwnerID,
		ReceivedCardID: testCardID,
		IntimacyPoint:  4,
		IntimacyLevel:  string(levels.Sprout),
	}
	relations.EXPECT().GetRelationByID(ctx, testRelationID).Return(rel, nil)
	cards.EXPECT().GetCardByID(ctx, testCardID).Return(&card.Card{ID: testCardID, Type: "ISFP"}, nil)

	d, err := svc.RelationDetail(ctx, testRelationID)
	if err != nil {
		t.Fatalf("RelationDetail: %v", err)
	}
	if d.Level.Key != levels.Sprout {
		t.Errorf("level = %v, want sprout", d.Level.Key)
	}
	if d.PointsToNext != 2 {
		t.Errorf("points to next = %d, want 2", d.PointsToNext)
	}
}
