// Package serve wires the service together for the CLI serve command.
package serve

import (
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/link-preview-api/internal/config"
	"github.com/dtnitsch/link-preview-api/internal/server"
	"github.com/dtnitsch/link-preview-api/pkg/caching"
	"github.com/dtnitsch/link-preview-api/pkg/favicon"
	"github.com/dtnitsch/link-preview-api/pkg/fetcher"
	"github.com/dtnitsch/link-preview-api/pkg/metadata"
	"github.com/dtnitsch/link-preview-api/pkg/summarize"
	"github.com/dtnitsch/link-preview-api/pkg/youtube"
)

// Action starts the HTTP service.
func Action(c *cli.Context) error {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	config.LoadEnv(logger)
	logger.SetLevel(config.GetLogLevel())

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if port := c.String("port"); port != "" {
		cfg.Port = port
	}

	f := fetcher.New(fetcher.Limits{
		Timeout:      cfg.FetchTimeout,
		MaxBytes:     cfg.FetchMaxBytes,
		MaxRedirects: cfg.FetchMaxRedirects,
	})
	favicons := favicon.NewResolver(cfg.FaviconProbeTimeout)
	yt := youtube.NewAdapter(f)
	assembler := metadata.NewAssembler(f, favicons, yt, logger)
	transcripts := summarize.NewTranscriptClient(cfg.TranscriptServiceURL)
	summarizer := summarize.NewSummarizer(
		transcripts, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, logger)

	srv := server.New(server.Deps{
		Config:       cfg,
		Logger:       logger,
		Assembler:    assembler,
		Favicons:     favicons,
		Fetcher:      f,
		Summarizer:   summarizer,
		MetaCache:    caching.New(),
		FaviconCache: caching.New(),
	})

	return server.Start(cfg, srv.Router(), logger)
}
