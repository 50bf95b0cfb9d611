package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sycelim/delivery-web/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container := app.MustBuildContainer(ctx)
	app.MustRun(container)
}
