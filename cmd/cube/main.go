package main

import (
	"os"
	"runtime"

	"github.com/urfave/cli"
)

// GLFW and the WebGPU device must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	app := cli.NewApp()
	app.Name = "cube"
	app.Usage = "render a rotating cube and report frame times"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "YAML config file applied on top of the defaults",
		},
		cli.StringFlag{
			Name:  "vertex-shader",
			Usage: "WGSL vertex shader path",
		},
		cli.StringFlag{
			Name:  "fragment-shader",
			Usage: "WGSL fragment shader path",
		},
		cli.BoolFlag{
			Name:  "vsync",
			Usage: "wait for vertical blank when presenting",
		},
		cli.BoolFlag{
			Name:  "software",
			Usage: "force the software fallback adapter",
		},
		cli.BoolFlag{
			Name:  "seed-bounds",
			Usage: "seed min/max with the first sample instead of 1/0",
		},
		cli.Float64Flag{
			Name:  "frame-limit",
			Usage: "cap the render loop at this many frames per second (0 = uncapped)",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Action = runCube

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
