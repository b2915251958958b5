package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/link-preview-api/internal/serve"
)

func main() {
	app := &cli.App{
		Name:  "link-preview-api",
		Usage: "metadata extraction service for link preview cards",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP API",
				Action: serve.Action,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "port",
						Usage: "listen port (overrides PORT)",
					},
					&cli.StringFlag{
						Name:  "config",
						Value: "config.yaml",
						Usage: "path to optional YAML config file",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
