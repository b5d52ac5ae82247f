package main

import (
	"log/slog"
	"time"

	"lbc-backend/lib/lbc"
)

type ClientConfig struct {
	BaseURL        string   `json:"base_url"`
	TimeoutSeconds int      `json:"timeout_seconds"`
	MaxRetries     int      `json:"max_retries"`
	MinDelayMs     int      `json:"min_delay_ms"`
	MaxDelayMs     int      `json:"max_delay_ms"`
	Proxies        []string `json:"proxies"`
	UserAgents     []string `json:"user_agents"`
}

type Config struct {
	Port   int          `json:"port"`
	Client ClientConfig `json:"client"`
}

// buildClient wires the configured proxy pool, user agents and pacing
// into one shared session and client.
func buildClient(cfg ClientConfig) *lbc.Client {
	var proxies []lbc.Proxy
	for _, spec := range cfg.Proxies {
		proxy, err := lbc.ParseProxy(spec)
		if err != nil {
			slog.Warn("skipping bad proxy spec", "err", err)
			continue
		}
		proxies = append(proxies, proxy)
	}

	minDelay := lbc.DefaultMinDelay
	if cfg.MinDelayMs > 0 {
		minDelay = time.Duration(cfg.MinDelayMs) * time.Millisecond
	}
	maxDelay := lbc.DefaultMaxDelay
	if cfg.MaxDelayMs > 0 {
		maxDelay = time.Duration(cfg.MaxDelayMs) * time.Millisecond
	}

	session := lbc.NewSession(lbc.SessionOptions{
		Proxies:    proxies,
		UserAgents: cfg.UserAgents,
		MinDelay:   minDelay,
		MaxDelay:   maxDelay,
	})
	return lbc.NewClient(lbc.ClientOptions{
		BaseURL:    cfg.BaseURL,
		Timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
		MaxRetries: cfg.MaxRetries,
		Session:    session,
	})
}
