package main

import (
	"os"

	"telehealth-api/cmd/bootstrap"
	"telehealth-api/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "telehealth-api",
		Short:        "Telehealth coordination API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(sweepAlertsCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the alert expiry sweeper",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New(cmd.Context(), bootstrap.Options{Migrate: migrate})
			if err != nil {
				logrus.Errorf("Failed to initialize application: %v", err)
				return err
			}
			app.Run()
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")

	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(database.MigrateUp)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(database.MigrateDown)
		},
	})

	return cmd
}

func runMigrations(direction database.MigrationDirection) error {
	cfg, log, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	if err := database.RunMigrations(cfg.DB, direction); err != nil {
		log.Errorf("Migration failed: %v", err)
		return err
	}
	return nil
}

func sweepAlertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep-alerts",
		Short: "Delete expired alerts once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := bootstrap.SweepExpiredAlerts(cmd.Context())
			if err != nil {
				logrus.Errorf("Alert sweep failed: %v", err)
				return err
			}
			logrus.Infof("Deleted %d expired alerts", deleted)
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	opts := database.SeedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo users, reports, consultations, lab results and alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootstrap.Seed(cmd.Context(), opts); err != nil {
				logrus.Errorf("Seed failed: %v", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Doctors, "doctors", 5, "number of doctors")
	cmd.Flags().IntVar(&opts.Patients, "patients", 20, "number of patients")
	cmd.Flags().StringVar(&opts.Password, "password", "password123", "password for every seeded account")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (0 picks one)")

	return cmd
}
