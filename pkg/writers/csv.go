package writers

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/roemer/fwcatalog/pkg/common"
)

// Writes a catalog as comma separated file named after the platform.
type CsvWriter struct {
	*writerBase
}

func NewCsvWriter(settings *WriterSettings) common.IWriter {
	return &CsvWriter{
		writerBase: newWriterBase(common.OUTPUT_FORMAT_CSV, settings),
	}
}

func (w *CsvWriter) Write(outputDir string, catalog *common.Catalog) (string, error) {
	filePath, err := w.prepareOutputPath(outputDir, catalog.Platform)
	if err != nil {
		return "", err
	}
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed creating file '%s': %w", filePath, err)
	}
	defer file.Close()

	csvWriter := csv.NewWriter(file)
	if w.settings.IncludeHeader {
		if err := csvWriter.Write(common.CatalogColumns); err != nil {
			return "", fmt.Errorf("failed writing file '%s': %w", filePath, err)
		}
	}
	for _, entry := range catalog.Entries {
		if err := csvWriter.Write(entry.Row()); err != nil {
			return "", fmt.Errorf("failed writing file '%s': %w", filePath, err)
		}
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return "", fmt.Errorf("failed writing file '%s': %w", filePath, err)
	}
	w.logger.Debug(fmt.Sprintf("Wrote %d row(s) to '%s'", len(catalog.Entries), filePath))
	return filePath, nil
}
