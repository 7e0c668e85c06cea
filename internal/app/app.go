package app

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/utage-jpg/profile/config"
	"github.com/utage-jpg/profile/internal/db"
	"github.com/utage-jpg/profile/internal/db/repositories/card"
	"github.com/utage-jpg/profile/internal/db/repositories/owner"
	"github.com/utage-jpg/profile/internal/db/repositories/relation"
	"github.com/utage-jpg/profile/internal/services/intimacy"
	"github.com/utage-jpg/profile/internal/services/profilebook"
	"github.com/utage-jpg/profile/internal/services/sharelink"
)

// App holds the wired services behind every CLI command.
type App struct {
	cfg   config.Config
	book  profilebook.Service
	share *sharelink.Service
}

// newApp loads config, migrates and connects the store, resolves the single
// local owner and wires the services.
func newApp(ctx context.Context) (*App, error) {
	cfg := config.LoadConfigOrPanic()

	if err := db.RunMigrations(cfg.DBConfig.URL()); err != nil {
		return nil, err
	}
	database, err := db.NewDatabase(cfg.DBConfig)
	if err != nil {
		return nil, err
	}

	o, err := owner.NewOwnerRepository(database).GetOrCreateOwner(ctx)
	if err != nil {
		return nil, err
	}

	cards := card.NewCardRepository(database)
	relations := relation.NewRelationRepository(database)
	book := profilebook.New(cards, relations, intimacy.New(), o.ID)

	return &App{
		cfg:   cfg,
		book:  book,
		share: sharelink.New(cfg.ShareConfig.BaseURL),
	}, nil
}

// Execute runs the profile CLI.
func Execute() error {
	root := &cobra.Command{
		Use:           "profile",
		Short:         "類型プロフィール帳 — create, share and collect personality profile cards",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newCreateCmd(),
		newCardsCmd(),
		newAddCmd(),
		newListCmd(),
		newShowCmd(),
		newMemoCmd(),
		newSweepCmd(),
		newWatchCmd(),
	)

	return root.Execute()
}
