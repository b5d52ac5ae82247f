package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"lbc-backend/lib/configutil"
	"lbc-backend/lib/serviceutil"
	"lbc-backend/services/search"
)

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if os.IsNotExist(err) {
		slog.Warn("no config.json5 found, running with defaults")
	} else if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}

	mux := http.NewServeMux()
	search.NewService(buildClient(cfg.Client)).Register(mux)

	go serviceutil.StartHttpServer(cfg.Port, mux)
	<-ctx.Done()
}
