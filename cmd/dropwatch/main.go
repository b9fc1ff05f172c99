package main

import (
	"context"

	"dropwatch-backend/cmd/dropwatch/commands"
	"dropwatch-backend/lib/osutil"
	"dropwatch-backend/lib/telemetry"
)

func main() {
	ctx := context.Background()

	t, err := telemetry.SetupFromEnv(ctx, "dropwatch")
	if err != nil {
		osutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(ctx)

	commands.ExecuteContext(ctx)
}
