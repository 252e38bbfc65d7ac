package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Govind-619/BuyMeAChai/config"
	"github.com/Govind-619/BuyMeAChai/gateway"
	"github.com/Govind-619/BuyMeAChai/utils"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the contribution table",
		RunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			db, err := config.OpenDB(cfg)
			if err != nil {
				return err
			}
			if err := config.Migrate(db, cfg.ContributionDedupe); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migration complete")
			return nil
		},
	}
}

func signCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign <order_id> <payment_id>",
		Short: "Print the gateway signature for an order and payment pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, _ := cmd.Flags().GetString("secret")
			if secret == "" {
				envFile, _ := cmd.Flags().GetString("env-file")
				cfg, err := config.LoadConfig(envFile)
				if err != nil {
					return err
				}
				secret = cfg.RazorpayKeySecret
			}
			if secret == "" {
				return fmt.Errorf("no secret: pass --secret or set RAZORPAY_KEY_SECRET")
			}
			fmt.Fprintln(cmd.OutOrStdout(), gateway.GenerateSignature(args[0], args[1], secret))
			return nil
		},
	}
	cmd.Flags().String("secret", "", "gateway key secret (defaults to RAZORPAY_KEY_SECRET)")
	return cmd
}

func analyzeLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze-logs",
		Short: "Summarise a day of service logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			day, _ := cmd.Flags().GetString("date")

			date := time.Now()
			if day != "" {
				parsed, err := time.Parse("2006-01-02", day)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
				date = parsed
			}

			path := filepath.Join(dir, utils.LogFileName(date))
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("error opening log file %s: %w", path, err)
			}
			defer file.Close()

			stats, err := utils.AnalyzeLog(file)
			if err != nil {
				return err
			}
			utils.WriteReport(cmd.OutOrStdout(), stats, time.Now())
			return nil
		},
	}
	cmd.Flags().String("dir", utils.DefaultLogDir, "log directory")
	cmd.Flags().String("date", "", "day to analyze as YYYY-MM-DD (defaults to today)")
	return cmd
}
