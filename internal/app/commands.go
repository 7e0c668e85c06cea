package app

import (
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/utage-jpg/profile/internal/db/repositories/card"
	"github.com/utage-jpg/profile/internal/services/cardface"
	"github.com/utage-jpg/profile/internal/healthcheck"
	"github.com/utage-jpg/profile/internal/services/levels"
	"github.com/utage-jpg/profile/internal/services/profilebook"
	"github.com/utage-jpg/profile/internal/services/timer"
)

func newCreateCmd() *cobra.Command {
	var (
		typeCode    string
		tagline     string
		likes       []string
		likeFree    string
		dislikes    []string
		dislikeFree string
		habits      []string
		habitFree   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create and publish a new profile card",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			profile := card.Profile{
				Tagline:  tagline,
				Likes:    card.TraitSelection{Preset: likes, Free: likeFree},
				Dislikes: card.TraitSelection{Preset: dislikes, Free: dislikeFree},
				Habits:   card.TraitSelection{Preset: habits, Free: habitFree},
			}
			c, err := a.book.CreateCard(cmd.Context(), typeCode, profile)
			if err != nil {
				return err
			}

			fmt.Print(cardface.RenderCard(c))
			fmt.Printf("共有リンク: %s\n", a.share.ShareURL(c.ID))
			fmt.Printf("投稿文:\n%s\n", a.share.ShareText(c))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeCode, "type", "", "personality type code (e.g. INTJ)")
	cmd.Flags().StringVar(&tagline, "tagline", "", "one-line self introduction")
	cmd.Flags().StringArrayVar(&likes, "like", nil, "preset: 好きなところ (repeatable)")
	cmd.Flags().StringVar(&likeFree, "like-free", "", "free text: 好きなところ")
	cmd.Flags().StringArrayVar(&dislikes, "dislike", nil, "preset: 苦手なところ (repeatable)")
	cmd.Flags().StringVar(&dislikeFree, "dislike-free", "", "free text: 苦手なところ")
	cmd.Flags().StringArrayVar(&habits, "habit", nil, "preset: 関係で出やすい癖 (repeatable)")
	cmd.Flags().StringVar(&habitFree, "habit-free", "", "free text: 関係で出やすい癖")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("tagline")

	return cmd
}

func newCardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cards",
		Short: "List the cards you have published",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			mine, err := a.book.ListMyCards(cmd.Context())
			if err != nil {
				return err
			}
			if len(mine) == 0 {
				fmt.Println("カードがありません")
				return nil
			}

			for _, c := range mine {
				fmt.Printf("[%s] %s  (%s)\n", c.Type, c.Profile.Tagline, c.CreatedAt.Format("2006-01-02"))
				fmt.Printf("    共有リンク: %s\n", a.share.ShareURL(c.ID))
			}
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <share-url|card-id>",
		Short: "Add a received card to your profile book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			cardID, err := a.share.ParseShareURL(args[0])
			if err != nil {
				return err
			}

			c, err := a.book.GetCard(cmd.Context(), cardID)
			if err != nil {
				return err
			}
			fmt.Print(cardface.RenderCard(c))

			rel, created, err := a.book.AddCard(cmd.Context(), cardID)
			if err != nil {
				return err
			}
			if !created {
				fmt.Println("✅ このカードは追加済みです")
			} else {
				fmt.Println("カードを追加しました！")
			}
			fmt.Printf("関係ID: %s\n", rel.ID)
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	var (
		typeCode string
		level    string
		sortBy   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the cards in your profile book",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			filter := profilebook.CollectionFilter{
				TypeCode: strings.ToUpper(strings.TrimSpace(typeCode)),
				Sort:     sortBy,
			}
			if level != "" {
				key, ok := levels.ParseKey(level)
				if !ok {
					return fmt.Errorf("unknown level %q (seed, sprout, tree)", level)
				}
				filter.Level = key
			}

			entries, err := a.book.ListCollection(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("カードがありません")
				return nil
			}

			for _, e := range entries {
				fmt.Printf("[%s] %s  %s (%dpt)\n", e.Card.Type,
					levels.DisplayText(levels.Key(e.Relation.IntimacyLevel)),
					e.Card.Profile.Tagline, e.Relation.IntimacyPoint)
				fmt.Printf("    関係ID: %s  追加日: %s\n", e.Relation.ID,
					e.Relation.CreatedAt.Format("2006-01-02"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&typeCode, "type", "", "filter by personality type code")
	cmd.Flags().StringVar(&level, "level", "", "filter by intimacy level (seed, sprout, tree)")
	cmd.Flags().StringVar(&sortBy, "sort", profilebook.SortRecent, "sort order: recent or intimate")

	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <relation-id>",
		Short: "Show a card's detail; counts as today's visit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			// Opening the detail page is the visit.
			if _, err := a.book.RecordVisit(cmd.Context(), args[0]); err != nil {
				return err
			}

			d, err := a.book.RelationDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Print(cardface.RenderCard(d.Card))
			fmt.Print(cardface.RenderIntimacy(d.Relation.IntimacyPoint, d.Level.Key))
			if d.Relation.Memo != "" {
				fmt.Printf("📝 非公開メモ: %s\n", d.Relation.Memo)
			}
			return nil
		},
	}
}

func newMemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "memo <relation-id> <text>...",
		Short: "Save a private memo on a relation",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			text := strings.Join(args[1:], " ")
			rel, err := a.book.SaveMemo(cmd.Context(), args[0], text)
			if err != nil {
				return err
			}

			fmt.Println("メモを保存しました！")
			fmt.Print(cardface.RenderIntimacy(rel.IntimacyPoint, levels.Key(rel.IntimacyLevel)))
			return nil
		},
	}
}

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Apply elapsed-time intimacy points to every relation",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			updated, err := a.book.SweepTimePoints(cmd.Context())
			if err != nil {
				return err
			}
			if updated > 0 {
				fmt.Printf("%d件の関係で時間経過による親密度更新がありました\n", updated)
			} else {
				fmt.Println("更新なし")
			}
			return nil
		},
	}
}

func newWatchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the elapsed-time sweep on an interval until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}

			healthcheck.StartHealthcheck(ctx, a.cfg.AppConfig)

			sweep := func() {
				updated, err := a.book.SweepTimePoints(ctx)
				if err != nil {
					log.Printf("sweep error: %v", err)
					return
				}
				if updated > 0 {
					log.Printf("%d件の関係で時間経過による親密度更新がありました", updated)
				}
			}

			sweep()
			rt := timer.NewRepeatedTimer(interval, sweep)
			defer rt.Stop()

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Hour, "sweep interval")

	return cmd
}
