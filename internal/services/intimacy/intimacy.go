package intimacy

import (
	"fmt"
	"strings"
	"time"

	"github.com/utage-jpg/profile/internal/services/levels"
)

// Action is a user action the engine converts into points.
type Action string

const (
	ActionNone  Action = ""
	ActionVisit Action = "visit"
	ActionMemo  Action = "memo"
	ActionTime  Action = "time"
)

const (
	visitPoints = 1
	memoPoints  = 2
	timePoints  = 1

	timeAwardDays = 7
	day           = 24 * time.Hour
)

// Snapshot is the slice of a relation the engine reads. All fields are
// defensively defaulted: nil ledger, zero or negative points are fine.
type Snapshot struct {
	IntimacyPoint int
	CreatedAt     time.Time
	Ledger        map[string]bool
}

// Result carries the new totals and ledger for the caller to persist.
// Ledger is always a fresh copy; the input snapshot is never mutated.
type Result struct {
	IntimacyPoint int
	IntimacyLevel levels.Key
	Ledger        map[string]bool
}

type Engine interface {
	// Apply computes the point delta for one action, recomputes the level and
	// marks consumed day-bucket keys. memoText is only read for ActionMemo.
	Apply(s Snapshot, action Action, memoText string) Result
	// NextTimeAwardIn reports how long until the next elapsed-time award can
	// be claimed, 0 if one is claimable right now.
	NextTimeAwardIn(s Snapshot) time.Duration
}

type Impl struct {
	loc *time.Location
	now func() time.Time
}

// New builds an engine keyed to the local calendar day.
func New() Engine {
	return &Impl{loc: time.Local, now: time.Now}
}

// NewWithClock pins the location and clock, for callers that need
// deterministic day buckets.
func NewWithClock(loc *time.Location, now func() time.Time) Engine {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Impl{loc: loc, now: now}
}

func (e *Impl) Apply(s Snapshot, action Action, memoText string) Result {
	points := s.IntimacyPoint
	if points < 0 {
		points = 0
	}
	ledger := copyLedger(s.Ledger)

	switch action {
	case ActionVisit:
		points += e.applyVisit(ledger)
	case ActionMemo:
		points += e.applyMemo(ledger, memoText)
	case ActionTime:
		points += e.applyTime(ledger, s.CreatedAt)
	}

	return Result{
		IntimacyPoint: points,
		IntimacyLevel: levels.ForPoints(points),
		Ledger:        ledger,
	}
}

// applyVisit awards once per calendar day, keyed by the bare day string.
func (e *Impl) applyVisit(ledger map[string]bool) int {
	today := e.dayKey(e.now())
	if ledger[today] {
		return 0
	}
	ledger[today] = true
	return visitPoints
}

// applyMemo awards once per calendar day for a non-empty memo. Blank text
// does not consume the day's allowance.
func (e *Impl) applyMemo(ledger map[string]bool, memoText string) int {
	if strings.TrimSpace(memoText) == "" {
		return 0
	}
	key := "memo_" + e.dayKey(e.now())
	if ledger[key] {
		return 0
	}
	ledger[key] = true
	return memoPoints
}

// applyTime awards once per completed 7-day interval since the relation was
// created, keyed by the interval index so repeated sweeps cannot double-award.
func (e *Impl) applyTime(ledger map[string]bool, createdAt time.Time) int {
	if createdAt.IsZero() {
		return 0
	}
	interval := e.intervalIndex(createdAt)
	if interval < 1 {
		return 0
	}
	key := fmt.Sprintf("time_%d", interval)
	if ledger[key] {
		return 0
	}
	ledger[key] = true
	return timePoints
}

func (e *Impl) NextTimeAwardIn(s Snapshot) time.Duration {
	if s.CreatedAt.IsZero() {
		return 0
	}
	interval := e.intervalIndex(s.CreatedAt)
	if interval >= 1 && !s.Ledger[fmt.Sprintf("time_%d", interval)] {
		return 0
	}
	boundary := s.CreatedAt.Add(time.Duration(interval+1) * timeAwardDays * day)
	return boundary.Sub(e.now())
}

// intervalIndex is the number of completed 7-day spans since createdAt,
// using floor division of full elapsed days.
func (e *Impl) intervalIndex(createdAt time.Time) int {
	elapsed := e.now().Sub(createdAt)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed/day) / timeAwardDays
}

func (e *Impl) dayKey(t time.Time) string {
	return t.In(e.loc).Format("2006-01-02")
}

func copyLedger(src map[string]bool) map[string]bool {
	out := make(map[string]bool, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
