package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/skillcheck-ai/skillcheck-api/internal/config"
	"github.com/skillcheck-ai/skillcheck-api/internal/container"
	"github.com/skillcheck-ai/skillcheck-api/internal/router"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	c, err := container.New(ctx, cfg)
	if err != nil {
		return err
	}

	handler := router.New(router.RouterConfig{
		UserHandler:      c.UserContainer.Handler,
		IngestionHandler: c.IngestionContainer.Handler,
		QuizHandler:      c.QuizContainer.Handler,
		QuizWSHandler:    c.QuizContainer.WSHandler,
		ResultsHandler:   c.ResultsContainer.Handler,
	})

	// On Lambda the adapter replaces the listener entirely.
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		adapter := chiadapter.New(handler)
		lambda.Start(adapter.ProxyWithContext)
		return nil
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logrus.Infof("Listening on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logrus.Info("Shutting down")
	case <-ctx.Done():
		logrus.Info("Context canceled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
