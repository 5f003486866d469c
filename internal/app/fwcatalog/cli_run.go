package fwcatalog

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/roemer/fwcatalog/pkg/cache"
	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/roemer/fwcatalog/pkg/config"
	"github.com/roemer/fwcatalog/pkg/logging"
	"github.com/roemer/fwcatalog/pkg/publishers"
	"github.com/roemer/fwcatalog/pkg/sources"
	"github.com/samber/lo"
)

func RunCmd(args []string) error {
	// Flags and help for the command
	var verbose bool
	var configFile string
	var workingDirectory string
	var outputDir string
	var formats stringSliceFlag
	var noCache bool
	var noPublish bool
	flagSet := flag.NewFlagSet("run", flag.ExitOnError)
	flagSet.BoolVar(&verbose, "verbose", false, "The flag to set in order to get verbose output")
	flagSet.BoolVar(&verbose, "v", verbose, "Alias for -verbose")
	flagSet.StringVar(&configFile, "config", config.DefaultConfigName, "The path to the config file to read")
	flagSet.StringVar(&workingDirectory, "workDir", "", "The path to the working directory")
	flagSet.StringVar(&outputDir, "outputDir", "", "Overrides the output directory of the config")
	flagSet.Var(&formats, "format", "Overrides the output formats of the config (csv or xlsx), can be passed multiple times")
	flagSet.BoolVar(&noCache, "noCache", false, "Disables the release cache")
	flagSet.BoolVar(&noPublish, "noPublish", false, "Only writes the catalogs without publishing them")
	flagSet.Usage = func() { printCmdUsage(flagSet, "run", "") }
	flagSet.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Create a logger
	logger := logging.NewLogger(os.Stdout, verbose)
	logger.Info("Starting fwcatalog run")

	// Change the working directory
	if workingDirectory != "" && workingDirectory != "." {
		logger.Debug(fmt.Sprintf("Changing working directory to: %s", workingDirectory))
		if err := os.Chdir(workingDirectory); err != nil {
			return err
		}
	}

	// Read the configuration
	rootConfig, err := config.Load(configFile)
	if err != nil {
		return err
	}

	// Process overrides
	if outputDir != "" {
		rootConfig.OutputDir = outputDir
	}
	if len(formats) > 0 {
		rootConfig.OutputFormats = lo.Map(formats, func(format string, _ int) common.OutputFormat { return common.OutputFormat(format) })
	}

	// Prepare the cache
	var releaseCache common.ICache
	if rootConfig.CacheDir != "" && !noCache {
		ttl, err := rootConfig.GetCacheTtl()
		if err != nil {
			return err
		}
		releaseCache = cache.NewReleaseCache(rootConfig.CacheDir, ttl, logger)
		logger.Debug(fmt.Sprintf("Using release cache in '%s' with ttl %s", rootConfig.CacheDir, ttl))
	}

	// Collect the releases from all sources
	enabledSources := rootConfig.GetEnabledSources()
	if len(enabledSources) == 0 {
		logger.Warn("No sources found to process")
		return nil
	}
	logger.Info(fmt.Sprintf("Processing %s", pluralize(len(enabledSources), "source")))
	allReleases := []*common.RawRelease{}
	for _, sourceConfig := range enabledSources {
		sourceSettings, err := rootConfig.ToCommonSourceSettings(sourceConfig, logger, releaseCache)
		if err != nil {
			return err
		}
		source, err := sources.GetSource(sourceConfig.Type, sourceSettings)
		if err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("Fetching releases from source '%s' (%s)", source.Id(), source.Type()))
		releases, err := source.FetchReleases(ctx)
		if err != nil {
			return fmt.Errorf("source '%s' failed: %w", source.Id(), err)
		}
		allReleases = append(allReleases, releases...)
	}

	// Build and write the catalogs
	catalogWriters, err := createWriters(lo.Map(rootConfig.GetOutputFormats(), func(format common.OutputFormat, _ int) string { return string(format) }), rootConfig.ToWriterSettings(logger))
	if err != nil {
		return err
	}
	pipeline := &catalogPipeline{
		logger:          logger,
		minimumFamily:   rootConfig.GetMinimumFamily(),
		outputDir:       rootConfig.OutputDir,
		writers:         catalogWriters,
		afterWriteHooks: rootConfig.GetAfterWriteHooks(),
	}
	if rootConfig.IsPublishEnabled() && !noPublish {
		publisher, err := publishers.GetPublisher(rootConfig.ToPublisherSettings(logger))
		if err != nil {
			return err
		}
		pipeline.publisher = publisher
		pipeline.baseBranch = rootConfig.GetPublishBaseBranch()
		pipeline.change = rootConfig.NewCatalogChange()
	}
	writtenFiles, err := pipeline.run(ctx, allReleases)
	if err != nil {
		return err
	}

	logger.Info(fmt.Sprintf("fwcatalog finished successfully, wrote %s", pluralize(len(writtenFiles), "file")))
	return nil
}
