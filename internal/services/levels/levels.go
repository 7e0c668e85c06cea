package levels

// Key identifies an intimacy level.
type Key string

const (
	Seed   Key = "seed"
	Sprout Key = "sprout"
	Tree   Key = "tree"
)

// Level is one row of the static level table. MaxPoints < 0 means unbounded.
type Level struct {
	Key       Key
	Name      string
	MinPoints int
	MaxPoints int
}

// table is ordered; ForPoints returns the first matching range.
var table = []Level{
	{Key: Seed, Name: "🌱 知った", MinPoints: 0, MaxPoints: 2},
	{Key: Sprout, Name: "🌿 慣れた", MinPoints: 3, MaxPoints: 5},
	{Key: Tree, Name: "🌳 深まった", MinPoints: 6, MaxPoints: -1},
}

// All returns a copy of the level table in order.
func All() []Level {
	out := make([]Level, len(table))
	copy(out, table)
	return out
}

// ForPoints maps a cumulative point total to its level key. Defaults to Seed.
func ForPoints(points int) Key {
	for _, l := range table {
		if points >= l.MinPoints && (l.MaxPoints < 0 || points <= l.MaxPoints) {
			return l.Key
		}
	}
	return Seed
}

// Info returns the full level record, the seed entry for unknown keys.
func Info(key Key) Level {
	for _, l := range table {
		if l.Key == key {
			return l
		}
	}
	return table[0]
}

// ToNext returns the points still needed to reach the next level, 0 at the
// terminal level. May be <= 0 transiently when a level recompute is pending.
func ToNext(points int, key Key) int {
	idx := 0
	for i, l := range table {
		if l.Key == key {
			idx = i
			break
		}
	}
	if idx == len(table)-1 {
		return 0
	}
	return table[idx+1].MinPoints - points
}

// DisplayText returns the user-facing name for a level key.
func DisplayText(key Key) string {
	return Info(key).Name
}

// ParseKey validates a raw level string, e.g. a CLI filter value.
func ParseKey(s string) (Key, bool) {
	for _, l := range table {
		if string(l.Key) == s {
			return l.Key, true
		}
	}
	return "", false
}
