package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"PortfolioReporter/internal/account"
	"PortfolioReporter/internal/config"
	"PortfolioReporter/internal/marketdata"
	"PortfolioReporter/internal/notifier"
	"PortfolioReporter/internal/pricestore"
	"PortfolioReporter/internal/report"
)

var (
	cfgPath     string
	credentials string
	priceIndex  string
	reportRoot  string
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	root := &cobra.Command{
		Use:           "reporter",
		Short:         "Periodic financial position reports for a trading account",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "configs/config.yaml", "path to YAML config file")
	root.PersistentFlags().StringVarP(&credentials, "credentials", "C", "", "dotenv file holding API credentials")
	root.PersistentFlags().StringVarP(&priceIndex, "price-index", "P", "", "path to the price index database")
	root.PersistentFlags().StringVar(&reportRoot, "report-root", "", "directory reports are published under")

	root.AddCommand(
		&cobra.Command{
			Use:   "daily",
			Short: "Generate the daily report",
			RunE:  runDaily,
		},
		&cobra.Command{
			Use:   "weekly",
			Short: "Generate the weekly report (reserved)",
			RunE: func(_ *cobra.Command, _ []string) error {
				return fmt.Errorf("weekly reports are not implemented yet")
			},
		},
	)

	if err := root.Execute(); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

func runDaily(_ *cobra.Command, _ []string) error {
	if credentials != "" {
		if err := godotenv.Load(credentials); err != nil {
			return fmt.Errorf("load credentials: %w", err)
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if priceIndex != "" {
		cfg.Database.PriceIndex = priceIndex
	}
	if reportRoot != "" {
		cfg.Report.Root = reportRoot
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	fetcher := marketdata.NewAlpacaFetcher(cfg.Alpaca.DataURL, cfg.Alpaca.Feed, cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	accounts := account.NewAlpacaService(cfg.Alpaca.TradingURL, cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Proxy)

	store, err := pricestore.NewSQLiteStore(cfg.Database.PriceIndex, cfg.Throttle())
	if err != nil {
		return fmt.Errorf("open price index: %w", err)
	}
	defer store.Close()

	var n notifier.Notifier
	if cfg.Telegram.BotToken != "" {
		n = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Proxy)
	} else {
		log.Println("[WARN] no telegram bot token configured, notifications go to the log")
		n = notifier.NewLogNotifier()
	}

	orch := report.NewOrchestrator(fetcher, accounts, store, n, report.Params{
		Symbol:       cfg.Symbol,
		ReportRoot:   cfg.Report.Root,
		Recipient:    cfg.Telegram.ChatID,
		LinkBase:     cfg.Report.LinkBase,
		FetchTimeout: cfg.FetchTimeout(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return orch.GenerateDailyReport(ctx)
}
