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
	"github.com/samber/lo"
)

// Builds the catalogs from the releases available on a firewall or Panorama and exports the images with scp.
func DeviceCmd(args []string) error {
	// Flags and help for the command
	var verbose bool
	var scpPath string
	var firmwareRegex string
	var outputDir string
	var formats stringSliceFlag
	var includeHeader bool
	var insecure bool
	var noDownload bool
	var minimumFamily float64
	flagSet := flag.NewFlagSet("device", flag.ExitOnError)
	flagSet.BoolVar(&verbose, "verbose", false, "The flag to set in order to get verbose output")
	flagSet.BoolVar(&verbose, "v", verbose, "Alias for -verbose")
	flagSet.StringVar(&scpPath, "scp-path", ".", "Where to find the firmware files exported from the device, to calculate the checksum")
	flagSet.StringVar(&scpPath, "p", scpPath, "Alias for -scp-path")
	flagSet.StringVar(&firmwareRegex, "firmware-regex", sources.DefaultFirmwarePattern, "Regex to limit the firmware file names")
	flagSet.StringVar(&outputDir, "outputDir", ".", "The directory to write the catalogs to")
	flagSet.Var(&formats, "format", "The output format (csv or xlsx), can be passed multiple times. Default: csv")
	flagSet.BoolVar(&includeHeader, "header", false, "Write the column names as first row")
	flagSet.BoolVar(&insecure, "insecure", false, "Skip the verification of the device certificate")
	flagSet.BoolVar(&noDownload, "noDownload", false, "Only use images which are already in the scp path")
	flagSet.Float64Var(&minimumFamily, "minimumFamily", common.DefaultMinimumFamily, "The oldest family that is written to the catalogs")
	flagSet.Usage = func() { printCmdUsage(flagSet, "device", "<device> <scp-profile> <api-key>") }
	flagSet.Parse(args)

	if flagSet.NArg() != 3 {
		flagSet.Usage()
		return fmt.Errorf("expected 3 arguments, got %d", flagSet.NArg())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := logging.NewLogger(os.Stdout, verbose)

	source := sources.NewPanosSource(&common.SourceSettings{
		Logger:          logger,
		Id:              flagSet.Arg(0),
		FileNamePattern: firmwareRegex,
		PanosSourceSettings: &common.PanosSourceSettings{
			Device:     flagSet.Arg(0),
			ScpProfile: flagSet.Arg(1),
			ApiKey:     flagSet.Arg(2),
			ScpPath:    scpPath,
			Download:   lo.Ternary(noDownload, common.FalsePtr, common.TruePtr),
			Insecure:   &insecure,
		},
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
	if _, err := pipeline.run(ctx, releases); err != nil {
		return err
	}
	logger.Info("Done.")
	return nil
}
