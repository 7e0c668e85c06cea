package cardface

import (
	"fmt"
	"strings"

	"github.com/utage-jpg/profile/internal/db/repositories/card"
	"github.com/utage-jpg/profile/internal/services/levels"
)

// Text rendering of a card for the terminal. Stands in for the canvas
// renderer of the web app; same sections, same ordering.

const footer = "類型プロフィール帳"

func RenderCard(c *card.Card) string {
	var b strings.Builder

	fmt.Fprintf(&b, "┌─ [%s] ─────────────────────\n", c.Type)
	fmt.Fprintf(&b, "│ %s\n", c.Profile.Tagline)
	fmt.Fprintf(&b, "│\n")
	fmt.Fprintf(&b, "│ 👍 好きなところ: %s\n", FormatTraits(c.Profile.Likes))
	fmt.Fprintf(&b, "│ 👎 苦手なところ: %s\n", FormatTraits(c.Profile.Dislikes))
	fmt.Fprintf(&b, "│ 🔄 関係で出やすい癖: %s\n", FormatTraits(c.Profile.Habits))
	fmt.Fprintf(&b, "└─ %s ─────\n", footer)

	return b.String()
}

// RenderIntimacy shows the current level, point total, distance to the next
// level and a heart bar of progress within the current level.
func RenderIntimacy(points int, key levels.Key) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %dpt  %s\n", levels.DisplayText(key), points, heartBar(points, key))
	if toNext := levels.ToNext(points, key); toNext > 0 {
		fmt.Fprintf(&b, "次のレベルまで: %dpt\n", toNext)
	}

	return b.String()
}

// FormatTraits merges presets and the trimmed free entry, 「なし」when empty.
func FormatTraits(ts card.TraitSelection) string {
	items := make([]string, 0, len(ts.Preset)+1)
	items = append(items, ts.Preset...)
	if free := strings.TrimSpace(ts.Free); free != "" {
		items = append(items, free)
	}
	if len(items) == 0 {
		return "なし"
	}
	return strings.Join(items, "、")
}

// heartBar fills 10 slots with progress through the current level's range,
// full at the terminal level.
func heartBar(points int, key levels.Key) string {
	info := levels.Info(key)

	hearts := 10
	if info.MaxPoints >= 0 {
		span := info.MaxPoints - info.MinPoints + 1 // one past max reaches the next level
		done := points - info.MinPoints
		if done < 0 {
			done = 0
		}
		hearts = done * 10 / span
		if hearts > 10 {
			hearts = 10
		}
	}
	return fmt.Sprintf("[%-20s]", strings.Repeat("❤️", hearts))
}
