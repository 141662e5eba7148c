package main

import (
	"context"

	"dominos-uk/cmd/dominos-cli/commands"
	"dominos-uk/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "dominos-cli")
	commands.ExecuteContext(context.Background())
}
