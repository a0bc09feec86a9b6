package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-octree-raytracer/web/server"
)

// Serve starts the preview web server.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	return server.NewServer(ctx.Int("port"), ctx.Int("workers")).Start()
}
