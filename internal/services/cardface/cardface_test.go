package cardface

import (
	"strings"
	"testing"

	"github.com/utage-jpg/profile/internal/db/repositories/card"
	"github.com/utage-jpg/profile/internal/services/levels"
)

func TestFormatTraits(t *testing.T) {
	tests := []struct {
		name string
		ts   card.TraitSelection
		want string
	}{
		{name: "empty", ts: card.TraitSelection{}, want: "なし"},
		{name: "presets only", ts: card.TraitSelection{Preset: []string{"猫", "散歩"}}, want: "猫、散歩"},
		{name: "free only", ts: card.TraitSelection{Free: " 深夜ラジオ "}, want: "深夜ラジオ"},
		{name: "presets and free", ts: card.TraitSelection{Preset: []string{"猫"}, Free: "散歩"}, want: "猫、散歩"},
		{name: "blank free ignored", ts: card.TraitSelection{Preset: []string{"猫"}, Free: "  "}, want: "猫"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTraits(tt.ts); got != tt.want {
				t.Errorf("FormatTraits() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderCard(t *testing.T) {
	c := &card.Card{
		Type: "INFP",
		Profile: card.Profile{
			Tagline: "のんびりやってます",
			Likes:   card.TraitSelection{Preset: []string{"音楽"}},
		},
	}

	out := RenderCard(c)
	for _, want := range []string{"[INFP]", "のんびりやってます", "👍 好きなところ: 音楽", "👎 苦手なところ: なし", "類型プロフィール帳"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderCard() missing %q:\n%s", want, out)
		}
	}
}

func TestRenderIntimacy(t *testing.T) {
	out := RenderIntimacy(4, levels.Sprout)
	for _, want := range []string{"🌿 慣れた", "4pt", "次のレベルまで: 2pt"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderIntimacy() missing %q:\n%s", want, out)
		}
	}

	// Terminal level shows no next-level line.
	out = RenderIntimacy(9, levels.Tree)
	if strings.Contains(out, "次のレベルまで") {
		t.Errorf("tree level should not show a next-level line:\n%s", out)
	}
}
