/*
Skyview loads a sprite sheet of six stacked faces, turns it into a
cubemap and lets you look around it with the mouse.
*/
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/skyview/engine"
	"github.com/spaghettifunk/skyview/engine/core"
	"github.com/spaghettifunk/skyview/engine/platform"
	"github.com/spaghettifunk/skyview/viewer"
)

func main() {
	configPath := flag.String("config", "config/skyview.toml", "path to the TOML configuration file")
	flag.Parse()

	config, err := engine.LoadApplicationConfig(*configPath)
	if err != nil {
		core.LogFatal("failed to load configuration: %s", err)
	}

	game := viewer.NewSkyviewGame(config)

	e, err := engine.New(game.Game, platform.New())
	if err != nil {
		panic(err)
	}

	if err := e.Initialize(); err != nil {
		panic(err)
	}

	// capture sigterm and other system calls
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	runErr := e.Run(ctx)
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown failed: %s", err)
	}
	if runErr != nil {
		core.LogFatal("engine stopped: %s", runErr)
	}
}
