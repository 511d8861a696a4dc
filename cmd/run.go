package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sit-kite/campus-agent/internal/adapters/bridge"
	tomlrepo "github.com/sit-kite/campus-agent/internal/adapters/repo/toml"
)

func newRunCmd(app *app) *cobra.Command {
	var hostAddr string
	var accountsFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Connect to the host and serve commands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if hostAddr == "" {
				hostAddr = app.config.HostAddr
			}
			if hostAddr == "" {
				return fmt.Errorf("host address is required (flag --host or config agent.host)")
			}
			if accountsFile == "" {
				accountsFile = app.config.AccountsFile
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			seedPool(ctx, app, accountsFile)

			agent, err := bridge.NewBuilder(app.config.Name).
				Host(hostAddr).
				Handler(app.dispatcher).
				Logger(app.logger).
				Build()
			if err != nil {
				return err
			}

			return serve(ctx, app, agent)
		},
	}

	cmd.Flags().StringVar(&hostAddr, "host", "", "Host WebSocket URL (wss://...)")
	cmd.Flags().StringVar(&accountsFile, "accounts", "", "Accounts file used to seed the session pool")

	return cmd
}

// serve keeps one bridge connection alive, reconnecting with a fixed
// delay until the context ends.
func serve(ctx context.Context, app *app, agent *bridge.Agent) error {
	delay := app.config.ReconnectDelay
	if delay <= 0 {
		delay = 5 * time.Second
	}

	for {
		err := agent.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			app.logger.Error("bridge connection ended", "error", err)
		} else {
			app.logger.Info("bridge connection closed by host")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
	}
}

// seedPool pre-authenticates the configured accounts so anonymous
// reads have sessions to draw from. Best effort: a failed login is
// logged and skipped.
func seedPool(ctx context.Context, app *app, accountsFile string) {
	credentials, err := tomlrepo.LoadCredentials(accountsFile)
	if err != nil {
		app.logger.Warn("load accounts file", "path", accountsFile, "error", err)
		return
	}
	if len(credentials) == 0 {
		app.logger.Info("no seed accounts configured; pool fills lazily")
		return
	}

	var wg sync.WaitGroup
	for _, credential := range credentials {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := app.store.QueryOr(ctx, credential.Account, credential.Password); err != nil {
				app.logger.Warn("seed login failed", "account", credential.Account, "error", err)
			}
		}()
	}
	wg.Wait()

	app.logger.Info("session pool seeded", "sessions", app.store.Len())
}
