package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/imkonsowa/restaurant-chatbot/config"
	"github.com/imkonsowa/restaurant-chatbot/dataset"
	"github.com/imkonsowa/restaurant-chatbot/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Copies the JSON datasets into Postgres",
	Long:  `seed loads menu, faq, about, branches and hours from a data directory and replaces the Postgres tables the agent reads when data.source is "postgres".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		logging.Setup(cfg.Logging)

		if dir := viper.GetString("data"); dir != "" {
			cfg.Data.Dir = dir
		}

		return seed(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file")
	rootCmd.Flags().String("data", "", "directory holding the JSON datasets (default from config)")

	viper.BindPFlags(rootCmd.Flags())
}

func seed(ctx context.Context, cfg *config.Config) error {
	ds, err := dataset.LoadDir(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("failed to load datasets: %w", err)
	}

	pg, err := dataset.NewPg(cfg.Postgres.ConnStr())
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := pg.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	if err := pg.Save(ctx, ds); err != nil {
		return fmt.Errorf("failed to save datasets: %w", err)
	}

	items := 0
	for _, c := range ds.Catalog.Categories {
		items += len(c.Items)
	}

	slog.Info("seed complete",
		"restaurant", ds.RestaurantName,
		"categories", len(ds.Catalog.Categories),
		"menu_items", items,
		"branches", len(ds.Branches),
		"hours", len(ds.Hours),
		"faqs", len(ds.FAQs),
	)

	return nil
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
