package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"lbc-backend/lib/configutil"
	"lbc-backend/lib/lbc"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lbc-cli",
	Short: "lbc-cli exercises searches and lookups against the marketplace backend.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type Config struct {
	BaseURL    string   `json:"base_url"`
	MaxRetries int      `json:"max_retries"`
	MinDelayMs int      `json:"min_delay_ms"`
	MaxDelayMs int      `json:"max_delay_ms"`
	Proxies    []string `json:"proxies"`
	UserAgents []string `json:"user_agents"`
}

// createClient builds a client from config.json5 when present, defaults
// otherwise.
func createClient() *lbc.Client {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "failed to read config:", err)
		os.Exit(1)
	}

	var proxies []lbc.Proxy
	for _, spec := range cfg.Proxies {
		proxy, err := lbc.ParseProxy(spec)
		if err != nil {
			slog.Warn("skipping bad proxy spec", "err", err)
			continue
		}
		proxies = append(proxies, proxy)
	}

	var session *lbc.Session
	if len(proxies) > 0 || len(cfg.UserAgents) > 0 || cfg.MinDelayMs > 0 {
		session = lbc.NewSession(lbc.SessionOptions{
			Proxies:    proxies,
			UserAgents: cfg.UserAgents,
			MinDelay:   time.Duration(cfg.MinDelayMs) * time.Millisecond,
			MaxDelay:   time.Duration(cfg.MaxDelayMs) * time.Millisecond,
		})
	}

	return lbc.NewClient(lbc.ClientOptions{
		BaseURL:    cfg.BaseURL,
		MaxRetries: cfg.MaxRetries,
		Session:    session,
	})
}
