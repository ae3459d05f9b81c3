package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	awsclient "github.com/K0NGR3SS/codesentry/internal/aws"
	"github.com/K0NGR3SS/codesentry/internal/compliance"
	"github.com/K0NGR3SS/codesentry/internal/config"
	"github.com/K0NGR3SS/codesentry/internal/scanner"
	"github.com/K0NGR3SS/codesentry/internal/source"
	"github.com/K0NGR3SS/codesentry/internal/ui"
)

// environment is what every handler needs besides the session: loaded
// configuration, the logger and lazily created AWS clients.
type environment struct {
	cfg    *config.Config
	log    *pterm.Logger
	out    io.Writer
	format string
	aws    *awsclient.Client
}

func newEnvironment(cmd *cobra.Command) (*environment, error) {
	configPath, _ := cmd.Flags().GetString("config")
	format, _ := cmd.Flags().GetString("format")
	region, _ := cmd.Flags().GetString("region")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if format != "" {
		cfg.OutputFormat = format
	}
	if region != "" {
		cfg.Region = region
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := ui.NewLogger(verbose)
	if configPath != "" {
		log.Debug("config loaded", log.Args("path", configPath))
	}

	return &environment{
		cfg:    cfg,
		log:    log,
		out:    cmd.OutOrStdout(),
		format: cfg.OutputFormat,
	}, nil
}

func (e *environment) table() bool {
	return e.format == "" || e.format == ui.FormatTable
}

func (e *environment) awsClient(ctx context.Context) (*awsclient.Client, error) {
	if e.aws != nil {
		return e.aws, nil
	}
	c, err := awsclient.NewClient(ctx, e.cfg.Region)
	if err != nil {
		return nil, err
	}
	e.log.Debug("aws client ready", e.log.Args("region", e.cfg.Region))
	e.aws = c
	return c, nil
}

func (e *environment) openSource(ctx context.Context, location string) (source.Source, error) {
	opts := source.Options{
		Exclude: e.cfg.Exclude,
		Warn: func(path string, err error) {
			e.log.Warn("skipping unreadable folder", e.log.Args("path", path, "error", err.Error()))
		},
	}

	var s3api source.S3API
	if source.IsS3(location) {
		c, err := e.awsClient(ctx)
		if err != nil {
			return nil, err
		}
		s3api = c.S3
	}
	return source.Open(ctx, location, s3api, opts)
}

func (e *environment) newReviewer(ctx context.Context) (compliance.Reviewer, error) {
	cc := e.cfg.Compliance
	deps := compliance.Deps{}

	if cc.Provider == config.ProviderBedrock || cc.APIKeySSMParameter != "" {
		c, err := e.awsClient(ctx)
		if err != nil {
			return nil, err
		}
		deps.Bedrock = c.Bedrock
		deps.SSM = c.SSM
	}

	r, err := compliance.New(ctx, cc, deps)
	if err != nil {
		return nil, fmt.Errorf("failed to set up %s reviewer: %w", cc.Provider, err)
	}
	e.log.Debug("reviewer ready", e.log.Args("provider", cc.Provider, "model", cc.ModelOrDefault()))
	return r, nil
}

func (e *environment) newScanner() *scanner.Scanner {
	s := scanner.New()
	s.ApplyConfig(e.cfg.Scanner)
	return s
}
