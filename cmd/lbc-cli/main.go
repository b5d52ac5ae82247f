package main

import (
	"context"

	"lbc-backend/cmd/lbc-cli/commands"
	"lbc-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "lbc-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(context.Background())
}
