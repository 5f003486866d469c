package writers

import (
	"fmt"
	"regexp"

	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheetName = "Sheet1"
	maxSheetNameLen  = 31
)

var invalidSheetNameCharsRegex = regexp.MustCompile(`[:\\/?*\[\]]`)

// Writes a catalog as spreadsheet with a single sheet named after the platform.
// The header row is always written and frozen.
type XlsxWriter struct {
	*writerBase
}

func NewXlsxWriter(settings *WriterSettings) common.IWriter {
	return &XlsxWriter{
		writerBase: newWriterBase(common.OUTPUT_FORMAT_XLSX, settings),
	}
}

func (w *XlsxWriter) Write(outputDir string, catalog *common.Catalog) (string, error) {
	filePath, err := w.prepareOutputPath(outputDir, catalog.Platform)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := SheetName(catalog.Platform)
	if err := f.SetSheetName(defaultSheetName, sheetName); err != nil {
		return "", fmt.Errorf("failed naming sheet '%s': %w", sheetName, err)
	}

	// Header
	header := make([]any, len(common.CatalogColumns))
	for i, column := range common.CatalogColumns {
		header[i] = column
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return "", err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", err
	}
	if err := f.SetRowStyle(sheetName, 1, 1, headerStyle); err != nil {
		return "", err
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return "", err
	}

	// Rows
	for i, entry := range catalog.Entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		row := []any{entry.SequenceIndex, entry.VersionNumber, entry.Family, string(entry.ReleaseType), entry.FileName, entry.Sha256Checksum}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return "", fmt.Errorf("failed writing row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(sheetName, "B", "C", 14); err != nil {
		return "", err
	}
	if err := f.SetColWidth(sheetName, "E", "F", 40); err != nil {
		return "", err
	}

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("failed saving file '%s': %w", filePath, err)
	}
	w.logger.Debug(fmt.Sprintf("Wrote %d row(s) to '%s'", len(catalog.Entries), filePath))
	return filePath, nil
}

// Converts the platform into a valid sheet name.
func SheetName(platform string) string {
	name := invalidSheetNameCharsRegex.ReplaceAllString(platform, "_")
	if runes := []rune(name); len(runes) > maxSheetNameLen {
		name = string(runes[:maxSheetNameLen])
	}
	if name == "" {
		return defaultSheetName
	}
	return name
}
