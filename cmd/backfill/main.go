package main

import (
	"context"
	"fmt"
	"os"

	"ai-journaling-be/internal/bootstrap"
	"ai-journaling-be/internal/config"
	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/pkg/logger"
	"ai-journaling-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	userFlag string
	allFlag  bool
	rootCmd  = &cobra.Command{
		Use:   "backfill",
		Short: "Summarize existing chats and journals and rebuild user profiles",
		RunE:  run,
	}
)

func main() {
	rootCmd.Flags().StringVarP(&userFlag, "user", "u", "", "User ID to backfill")
	rootCmd.Flags().BoolVar(&allFlag, "all", false, "Backfill every user")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if (userFlag == "") == !allFlag {
		return fmt.Errorf("exactly one of --user or --all is required")
	}

	cfg := config.Load()
	sysLogger := logger.NewConsoleLogger()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.Debug)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	container, err := bootstrap.NewContainer(db, cfg, sysLogger)
	if err != nil {
		return err
	}
	defer container.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if allFlag {
		reports, err := container.BackfillService.RunAll(ctx)
		for _, report := range reports {
			printReport(report)
		}
		return err
	}

	userId, err := uuid.Parse(userFlag)
	if err != nil {
		return fmt.Errorf("--user must be a UUID: %w", err)
	}
	report, err := container.BackfillService.RunForUser(ctx, userId)
	if err != nil {
		return err
	}
	printReport(report)
	return nil
}

func printReport(report *dto.BackfillReport) {
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	fmt.Printf("%s user %s: %d chat summaries, %d journal summaries, profile updated: %t\n",
		ok("[OK]"), report.UserId, report.ChatSummaries, report.JournalSummaries, report.ProfileUpdated)
	for _, msg := range report.Errors {
		fmt.Printf("%s user %s: %s\n", bad("[ERROR]"), report.UserId, msg)
	}
}
