package main

import (
	"toolcurator-backend/cmd/toolcurator/commands"
	"toolcurator-backend/lib/serviceutil"
	"toolcurator-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "toolcurator")
	telemetry.InitSlog(true)
	commands.ExecuteContext(ctx)
}
