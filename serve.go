package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Govind-619/BuyMeAChai/config"
	"github.com/Govind-619/BuyMeAChai/controllers"
	"github.com/Govind-619/BuyMeAChai/events"
	"github.com/Govind-619/BuyMeAChai/gateway"
	"github.com/Govind-619/BuyMeAChai/identity"
	"github.com/Govind-619/BuyMeAChai/repository"
	"github.com/Govind-619/BuyMeAChai/routes"
	"github.com/Govind-619/BuyMeAChai/services"
	"github.com/Govind-619/BuyMeAChai/utils"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}
}

func loadConfig(envFile string) (*config.Config, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if err := utils.InitLogger(cfg.LogDir, cfg.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

func runServer(ctx context.Context, cfg *config.Config) error {
	db, err := config.OpenDB(cfg)
	if err != nil {
		return err
	}
	if err := config.Migrate(db, cfg.ContributionDedupe); err != nil {
		return err
	}
	store := repository.NewContributionStore(db)

	orders := services.NewOrderService(
		gateway.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.GatewayTimeout),
		cfg.RazorpayKeyID,
		cfg.DefaultCurrency,
	)

	opts := []services.ConfirmationOption{services.WithStoreTimeout(cfg.DBTimeout)}
	if email := cfg.EmailConfig(); email.Configured() && cfg.OperatorEmail != "" {
		opts = append(opts, services.WithAlerter(services.NewEmailAlerter(utils.NewMailer(email), cfg.OperatorEmail)))
		utils.LogInfo("Operator alerts will be mailed to %s", cfg.OperatorEmail)
	}
	if cfg.RabbitMQURL != "" {
		publisher, err := events.NewRabbitPublisher(cfg.RabbitMQURL, cfg.EventsExchange)
		if err != nil {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		defer publisher.Close()
		opts = append(opts, services.WithPublisher(publisher))
		utils.LogInfo("Publishing contribution events to exchange %s", cfg.EventsExchange)
	}
	confirmations := services.NewConfirmationService(store, cfg.RazorpayKeySecret, opts...)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.PaymentSimulator {
		utils.LogWarn("PAYMENT_SIMULATOR is enabled: /api/dev/simulate-payment signs payments with the gateway secret")
	}
	router := routes.SetupRouter(routes.Options{
		Controller: controllers.NewChaiController(orders, confirmations, store, controllers.Settings{
			KeySecret: cfg.RazorpayKeySecret,
			ChaiPrice: cfg.ChaiPrice,
		}),
		Identity:          newIdentityProvider(cfg),
		AdminUserIDs:      cfg.AdminUserIDs,
		CORSOrigin:        cfg.CORSOrigin,
		Production:        cfg.IsProduction(),
		PaymentSimulator:  cfg.PaymentSimulator,
		APIRateLimit:      cfg.APIRateLimit,
		APIRateWindow:     cfg.APIRateWindow,
		PaymentRateLimit:  cfg.PaymentRateLimit,
		PaymentRateWindow: cfg.PaymentRateWindow,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.LogInfo("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			utils.LogError("Error starting server: %v", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	utils.LogInfo("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// newIdentityProvider prefers local JWT checks and falls back to asking Supabase
func newIdentityProvider(cfg *config.Config) identity.Provider {
	if cfg.SupabaseJWTSecret != "" {
		return identity.NewJWTProvider(cfg.SupabaseJWTSecret, identity.SupabaseAudience)
	}
	utils.LogWarn("SUPABASE_JWT_SECRET not set, validating tokens against %s", cfg.SupabaseURL)
	return identity.NewSupabaseProvider(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.GatewayTimeout)
}
