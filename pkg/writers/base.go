package writers

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roemer/fwcatalog/pkg/common"
)

// Settings relevant for the catalog writers.
type WriterSettings struct {
	Logger *slog.Logger
	// Flag to write the column names as first row.
	IncludeHeader bool
}

type writerBase struct {
	format   common.OutputFormat
	logger   *slog.Logger
	settings *WriterSettings
}

func newWriterBase(format common.OutputFormat, settings *WriterSettings) *writerBase {
	logger := settings.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &writerBase{
		format:   format,
		logger:   logger.With(slog.String("writer", string(format))),
		settings: settings,
	}
}

func GetWriter(format common.OutputFormat, settings *WriterSettings) (common.IWriter, error) {
	switch format {
	case common.OUTPUT_FORMAT_CSV:
		return NewCsvWriter(settings), nil
	case common.OUTPUT_FORMAT_XLSX:
		return NewXlsxWriter(settings), nil
	}
	return nil, fmt.Errorf("no writer defined for '%s'", format)
}

func (w *writerBase) Format() common.OutputFormat {
	return w.format
}

// Gets the path of the output file for the given platform and makes sure the directory exists.
func (w *writerBase) prepareOutputPath(outputDir string, platform string) (string, error) {
	if platform == "" {
		return "", fmt.Errorf("catalog has no platform")
	}
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed creating the output directory '%s': %w", outputDir, err)
	}
	return filepath.Join(outputDir, fmt.Sprintf("%s.%s", common.SanitizeFileName(platform), w.format)), nil
}
