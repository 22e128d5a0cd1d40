package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/foreman-dev/foreman/db"
	"github.com/foreman-dev/foreman/internal/auth"
	"github.com/foreman-dev/foreman/internal/router"
)

const (
	portFlag = "port"

	shutdownTimeout = 10 * time.Second
)

var serveFlags = map[string]cobraflags.Flag{
	portFlag: &cobraflags.StringFlag{
		Name:  portFlag,
		Value: "",
		Usage: "Port to listen on (overrides PORT)",
	},
}

func newServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and start the HTTP server",
		RunE:  serveCommand,
	}

	cobraflags.RegisterMap(serveCmd, serveFlags)

	return serveCmd
}

func serveCommand(cmd *cobra.Command, _ []string) error {
	a, err := openApp()

	if err != nil {
		return err
	}

	defer a.close()

	if err := a.cfg.Validate(); err != nil {
		return err
	}

	issuer, err := auth.NewIssuer(a.cfg.JWTSecret)

	if err != nil {
		return err
	}

	if err := a.migrate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.cfg.SeedOnStart {
		if _, err := db.Seed(ctx, a.db, a.logger); err != nil {
			return fmt.Errorf("error seeding database: %w", err)
		}
	}

	gin.SetMode(a.cfg.GinMode)

	port := a.cfg.Port

	if flagPort := serveFlags[portFlag].GetString(); flagPort != "" {
		port = flagPort
	}

	server := &http.Server{
		Addr: ":" + port,
		Handler: router.NewRouter(router.Options{
			DB:             a.db,
			Issuer:         issuer,
			Logger:         a.logger,
			AllowedOrigins: a.cfg.AllowedOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)

	go func() {
		a.logger.Info("server listening", "addr", server.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	return nil
}
