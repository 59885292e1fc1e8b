package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/financeai/financeai-backend/internal/config"
	"github.com/financeai/financeai-backend/internal/gemini"
	"github.com/financeai/financeai-backend/internal/server"
	"github.com/financeai/financeai-backend/internal/store"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "financeai",
		Short: "FinanceAI: Gemini-backed financial assistant backend",
	}
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load() // .env is optional

			loggerConfig := zap.NewProductionConfig()
			logger, err := loggerConfig.Build()
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}
			if cfg.GeminiAPIKey == "" {
				// Not fatal: the chat boundary reports it per-request.
				logger.Warn("GEMINI_API_KEY is not set; chat requests will fail until it is configured")
			}

			client := gemini.NewClient(gemini.ClientConfig{
				APIKey:          cfg.GeminiAPIKey,
				Model:           cfg.Model,
				MaxOutputTokens: cfg.MaxOutputTokens,
				Temperature:     cfg.Temperature,
				Timeout:         cfg.RequestTimeout,
				Logger:          logger,
			})

			mem := store.NewConversationStore()
			srv := server.New(server.Options{
				Store:      mem,
				Generator:  client,
				Logger:     logger,
				CORSOrigin: cfg.CORSOrigin,
			})

			logger.Info("starting financeai",
				zap.String("version", version),
				zap.String("model", client.Model()),
				zap.String("port", cfg.Port),
			)
			return srv.Run(":" + cfg.Port)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default: $PORT or 8080)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}
