package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/causeswipe/causeswipe/internal/api"
	"github.com/causeswipe/causeswipe/internal/config"
	"github.com/causeswipe/causeswipe/pkg/clients/gmailclient"
	"github.com/causeswipe/causeswipe/pkg/core/services"
	"github.com/causeswipe/causeswipe/pkg/logging"
	"github.com/causeswipe/causeswipe/pkg/postgres"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	mailer   services.Mailer
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "causeswipe",
		Short: "CauseSwipe - volunteer matching backend",
		Long:  `Backend for the CauseSwipe volunteer matching platform: opportunities, swipes, matches, tasks, achievements and notifications.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (test, prod, etc.)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedAchievementsCmd())
	rootCmd.AddCommand(listNotificationsCmd())
	rootCmd.AddCommand(awardMedalCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, database and the optional mailer
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.Init(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.logger.Info("Loading configuration")
	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.logger.Info("Connecting to database")
	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.logger.Debug("Database connection established")

	if app.cfg.Email != nil && app.cfg.Email.Enabled {
		app.logger.Info("Initializing gmail client")
		mailer, err := gmailclient.NewClient(app.ctx, app.cfg.Email)
		if err != nil {
			return fmt.Errorf("failed to create gmail client: %w", err)
		}
		app.mailer = mailer
		app.logger.Debug("Gmail client initialized successfully")
	}

	return nil
}

// Command definitions

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(app.ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			handler := api.New(app.database, app.logger, app.mailer, app.cfg)
			return handler.Serve(ctx, app.cfg.ListenAddr)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.database.RunMigrations(app.ctx); err != nil {
				return err
			}
			fmt.Println("Migrations applied successfully")
			return nil
		},
	}
}

func seedAchievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-achievements",
		Short: "Insert the default achievement templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := services.SeedDefaultAchievements(app.ctx, app.database, app.logger)
			if err != nil {
				return err
			}
			if count == 0 {
				fmt.Println("Achievements already seeded, nothing to do")
				return nil
			}
			fmt.Printf("Seeded %d achievements\n", count)
			return nil
		},
	}
}

func listNotificationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-notifications <user_id>",
		Short: "Print a user's notification feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notifications, err := services.GetNotifications(app.ctx, app.database, args[0], app.cfg.NotificationPageSize)
			if err != nil {
				return err
			}

			if len(notifications) == 0 {
				fmt.Println("No notifications")
				return nil
			}

			for _, n := range notifications {
				marker := " "
				if !n.IsRead {
					marker = "*"
				}
				fmt.Printf("%s [%s] %s - %s (%s)\n", marker, n.Type, n.Title, n.Message,
					n.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func awardMedalCmd() *cobra.Command {
	var description, icon string

	cmd := &cobra.Command{
		Use:   "award-medal <user_id> <ngo_id> <name>",
		Short: "Award a custom medal to a volunteer on behalf of an organization",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := services.AwardCustomMedal(app.ctx, app.database, app.logger, app.mailer,
				args[0], args[1], args[2], description, icon)
			if err != nil {
				return err
			}
			fmt.Printf("Medal awarded: %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Medal description")
	cmd.Flags().StringVarP(&icon, "icon", "i", "", "Medal icon")

	return cmd
}
