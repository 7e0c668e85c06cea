package sharelink

import (
	"errors"
	"strings"
	"testing"

	"github.com/utage-jpg/profile/internal/db/repositories/card"
)

const testCardID = "22222222-2222-4222-8222-222222222222"

func TestShareURL(t *testing.T) {
	s := New("https://profile-card.example.jp/")
	got := s.ShareURL(testCardID)
	want := "https://profile-card.example.jp/#/share/" + testCardID
	if got != want {
		t.Errorf("ShareURL() = %q, want %q", got, want)
	}
}

func TestParseShareURL(t *testing.T) {
	s := New("https://profile-card.example.jp/")

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "full url", raw: "https://profile-card.example.jp/#/share/" + testCardID, want: testCardID},
		{name: "foreign host", raw: "https://other.example.com/app/#/share/" + testCardID, want: testCardID},
		{name: "bare fragment", raw: "#/share/" + testCardID, want: testCardID},
		{name: "route path", raw: "/share/" + testCardID, want: testCardID},
		{name: "plain card id", raw: testCardID, want: testCardID},
		{name: "surrounding whitespace", raw: "  " + testCardID + " ", want: testCardID},
		{name: "trailing query", raw: "#/share/" + testCardID + "?utm=x", want: testCardID},
		{name: "empty", raw: "", wantErr: true},
		{name: "not an id", raw: "#/share/hello", wantErr: true},
		{name: "unrelated url", raw: "https://example.com/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ParseShareURL(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidShareLink) {
					t.Errorf("err = %v, want ErrInvalidShareLink", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseShareURL(%q): %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseShareURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestShareText(t *testing.T) {
	s := New("https://profile-card.example.jp/")
	c := &card.Card{Type: "ENFP", Profile: card.Profile{Tagline: "はじめまして"}}

	text := s.ShareText(c)
	for _, want := range []string{"ENFP", "はじめまして", "#類型プロフィール帳", "#ENFP"} {
		if !strings.Contains(text, want) {
			t.Errorf("ShareText() missing %q:\n%s", want, text)
		}
	}
}
