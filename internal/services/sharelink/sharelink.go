package sharelink

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/utage-jpg/profile/internal/db/repositories/card"
)

// ErrInvalidShareLink is returned when no card id can be extracted.
var ErrInvalidShareLink = errors.New("not a share link or card id")

const sharePrefix = "#/share/"

type Service struct {
	baseURL string
}

func New(baseURL string) *Service {
	return &Service{baseURL: baseURL}
}

// ShareURL builds the link a recipient opens to view and add the card.
func (s *Service) ShareURL(cardID string) string {
	return s.baseURL + sharePrefix + cardID
}

// ShareText builds the SNS post text for a card, hashtags included.
func (s *Service) ShareText(c *card.Card) string {
	return fmt.Sprintf("私の%sプロフィール帳を作成しました！\n%s\n\n#類型プロフィール帳 #%s",
		c.Type, c.Profile.Tagline, c.Type)
}

// ParseShareURL extracts the card id from a full share URL, a bare
// "#/share/<id>" fragment, or a plain card id.
func (s *Service) ParseShareURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidShareLink
	}

	id := raw
	if i := strings.Index(raw, sharePrefix); i >= 0 {
		id = raw[i+len(sharePrefix):]
	} else if strings.HasPrefix(raw, "/share/") {
		id = strings.TrimPrefix(raw, "/share/")
	}
	if j := strings.IndexAny(id, "?/"); j >= 0 {
		id = id[:j]
	}

	if _, err := uuid.Parse(id); err != nil {
		return "", ErrInvalidShareLink
	}
	return id, nil
}
