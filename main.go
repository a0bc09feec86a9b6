package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-octree-raytracer/cmd"
	"github.com/df07/go-octree-raytracer/pkg/log"
)

var logger = log.New("raytracer")

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render scenes with an octree-accelerated Whitted ray tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "set the log level explicitly (debug, info, notice, warning, error)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame of a built-in scene",
			Description: `
Index the scene's entities in an octree, trace every pixel across a pool of
workers and write the averaged frame to a PNG file.`,
			Flags:  cmd.RenderFlags,
			Action: cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve the scene preview API over HTTP",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to serve on",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "number of render workers per request (0 = one per logical CPU)",
				},
			},
			Action: cmd.Serve,
		},
		{
			Name:   "sysinfo",
			Usage:  "print host CPU and memory information",
			Action: cmd.SystemInfo,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
