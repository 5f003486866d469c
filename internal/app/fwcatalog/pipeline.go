package fwcatalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roemer/fwcatalog/pkg/catalog"
	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/roemer/fwcatalog/pkg/publishers"
	"github.com/mattn/go-shellwords"
	"github.com/roemer/goext"
)

// Builds the catalogs from raw releases, writes them and runs the hooks.
type catalogPipeline struct {
	logger          *slog.Logger
	minimumFamily   float64
	outputDir       string
	writers         []common.IWriter
	afterWriteHooks []string

	// Optional publisher for the written catalogs
	publisher  publishers.IPublisher
	baseBranch string
	change     *common.CatalogChange
}

// Runs the pipeline and returns the paths of the written files.
// Platforms without releases are skipped with a warning, all other failures are returned together.
// Nothing is published if a platform failed.
func (p *catalogPipeline) run(ctx context.Context, releases []*common.RawRelease) ([]string, error) {
	p.logger.Info(fmt.Sprintf("Building catalogs from %s", pluralize(len(releases), "release")))
	builder := catalog.NewBuilder(p.logger, p.minimumFamily)
	results, err := builder.BuildAll(ctx, releases)
	if err != nil {
		var emptyInputError *common.EmptyInputError
		if errors.As(err, &emptyInputError) {
			p.logger.Warn(fmt.Sprintf("Nothing to write: %s", err))
			return []string{}, nil
		}
		return nil, err
	}

	writtenFiles := []string{}
	writtenCatalogs := []*common.Catalog{}
	platformErrors := []error{}
	for _, result := range results {
		if result.Err != nil {
			var emptyInputError *common.EmptyInputError
			if errors.As(result.Err, &emptyInputError) {
				p.logger.Warn(fmt.Sprintf("Skipping platform: %s", result.Err))
				continue
			}
			platformErrors = append(platformErrors, result.Err)
			continue
		}
		for _, writer := range p.writers {
			filePath, err := writer.Write(p.outputDir, result.Catalog)
			if err != nil {
				return writtenFiles, fmt.Errorf("failed writing %s catalog for platform '%s': %w", writer.Format(), result.Platform, err)
			}
			p.logger.Info(fmt.Sprintf("Wrote catalog for platform '%s' with %s to '%s'", result.Platform, pluralize(len(result.Catalog.Entries), "row"), filePath))
			writtenFiles = append(writtenFiles, filePath)
		}
		writtenCatalogs = append(writtenCatalogs, result.Catalog)
	}
	if err := errors.Join(platformErrors...); err != nil {
		return writtenFiles, err
	}
	if len(writtenFiles) > 0 {
		if err := p.runHooks(); err != nil {
			return writtenFiles, err
		}
	}
	if p.publisher != nil {
		p.change.Files = writtenFiles
		p.change.Catalogs = writtenCatalogs
		if err := publishers.Publish(ctx, p.publisher, p.baseBranch, p.change, p.logger); err != nil {
			return writtenFiles, fmt.Errorf("failed publishing the catalogs: %w", err)
		}
	}
	return writtenFiles, nil
}

func (p *catalogPipeline) runHooks() error {
	outputDir := p.outputDir
	if outputDir == "" {
		outputDir = "."
	}
	for _, hook := range p.afterWriteHooks {
		exe, args, err := splitHookCommand(hook)
		if err != nil {
			return err
		}
		if exe == "" {
			continue
		}
		p.logger.Info(fmt.Sprintf("Running hook: %s", hook))
		outStr, errStr, err := goext.CmdRunners.Default.WithWorkingDirectory(outputDir).RunGetOutput(exe, args...)
		if err != nil {
			return fmt.Errorf("hook '%s' failed: error: %w, stdout: %s, stderr: %s", hook, err, outStr, errStr)
		}
		p.logger.Debug(fmt.Sprintf("Hook output: %s", strings.TrimSpace(outStr)))
	}
	return nil
}

// Splits a hook command into the executable and its arguments with shell quoting rules.
func splitHookCommand(command string) (string, []string, error) {
	parts, err := shellwords.Parse(command)
	if err != nil {
		return "", nil, fmt.Errorf("invalid hook command '%s': %w", command, err)
	}
	if len(parts) == 0 {
		return "", nil, nil
	}
	return parts[0], parts[1:], nil
}
