package main

import (
	"context"
	"log/slog"

	"lbc-backend/lib/lbc"
	"lbc-backend/lib/restyutil"
	"lbc-backend/lib/serviceutil"
	"lbc-backend/lib/telemetry"
)

func InitTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	_, err := telemetry.SetupFromEnv(ctx, "lbc-server")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	go func() {
		<-ctx.Done()
		telemetry.Shutdown(context.Background())
	}()
	telemetry.InstrumentPerfStats(ctx)

	if !verbose {
		return
	}

	lbc.SetRestyInstrumentOutput(
		restyutil.NewFilesystemOutput(".dev/resty/lbc"),
	)
}
