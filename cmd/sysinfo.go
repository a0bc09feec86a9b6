package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-octree-raytracer/pkg/sysinfo"
)

// SystemInfo prints the host CPU and memory and the default worker count.
func SystemInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	info, err := sysinfo.Read()
	if err != nil {
		return err
	}
	logger.Noticef("%s", info)
	logger.Noticef("default render workers: %d", sysinfo.DefaultWorkers())
	return nil
}
