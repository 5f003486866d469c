package fwcatalog

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/roemer/fwcatalog/pkg/logging"
	"github.com/roemer/fwcatalog/pkg/sources"
	"github.com/roemer/fwcatalog/pkg/writers"
)

// Builds the catalogs from release list files (eg. an input.json exported from the support portal).
func ExtractCmd(args []string) error {
	// Flags and help for the command
	var verbose bool
	var outputDir string
	var formats stringSliceFlag
	var includeHeader bool
	var minimumFamily float64
	var platform string
	flagSet := flag.NewFlagSet("extract", flag.ExitOnError)
	flagSet.BoolVar(&verbose, "verbose", false, "The flag to set in order to get verbose output")
	flagSet.BoolVar(&verbose, "v", verbose, "Alias for -verbose")
	flagSet.StringVar(&outputDir, "outputDir", ".", "The directory to write the catalogs to")
	flagSet.Var(&formats, "format", "The output format (csv or xlsx), can be passed multiple times. Default: csv")
	flagSet.BoolVar(&includeHeader, "header", false, "Write the column names as first row")
	flagSet.Float64Var(&minimumFamily, "minimumFamily", common.DefaultMinimumFamily, "The oldest family that is written to the catalogs")
	flagSet.StringVar(&platform, "platform", "", "The platform for releases that do not define one")
	flagSet.Usage = func() { printCmdUsage(flagSet, "extract", "[files or glob patterns...]") }
	flagSet.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := logging.NewLogger(os.Stdout, verbose)

	patterns := flagSet.Args()
	if len(patterns) == 0 {
		patterns = []string{sources.DefaultInputFile}
	}
	source := sources.NewFileSource(&common.SourceSettings{
		Logger:             logger,
		Platform:           platform,
		FileSourceSettings: &common.FileSourceSettings{Patterns: patterns},
	})
	releases, err := source.FetchReleases(ctx)
	if err != nil {
		return err
	}

	catalogWriters, err := createWriters(formats, &writers.WriterSettings{Logger: logger, IncludeHeader: includeHeader})
	if err != nil {
		return err
	}
	pipeline := &catalogPipeline{
		logger:        logger,
		minimumFamily: minimumFamily,
		outputDir:     outputDir,
		writers:       catalogWriters,
	}
	writtenFiles, err := pipeline.run(ctx, releases)
	if err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("Done, wrote %s", pluralize(len(writtenFiles), "file")))
	return nil
}
