// Package importer parses bulk gallery uploads from Excel workbooks.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ustaweb/content-manager/internal/models"
)

// Column indices in the import sheet (0-based).
const (
	colTitle        = 0 // Column A
	colDescription  = 1 // Column B
	colImageURL     = 2 // Column C
	colThumbnailURL = 3 // Column D
	colCategoryID   = 4 // Column E
	colOrder        = 5 // Column F
	colIsActive     = 6 // Column G
	colIsFeatured   = 7 // Column H

	headerRowCount = 1
)

// GalleryRow is one parsed row of the import sheet.
type GalleryRow struct {
	Row          int // sheet row number, for error reporting
	Title        string
	Description  string
	ImageURL     string
	ThumbnailURL string
	CategoryID   string
	Order        int
	IsActive     bool
	IsFeatured   bool
}

// ImportError is a validation failure tied to a sheet row.
type ImportError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ValidateRow returns an error message for an invalid row, or "" when valid.
func ValidateRow(row GalleryRow) string {
	if strings.TrimSpace(row.Title) == "" {
		return "title is required"
	}
	if strings.TrimSpace(row.ImageURL) == "" {
		return "image_url is required"
	}
	if !strings.HasPrefix(row.ImageURL, "http://") &&
		!strings.HasPrefix(row.ImageURL, "https://") &&
		!strings.HasPrefix(row.ImageURL, "/") {
		return "image_url must be an absolute URL or site path"
	}
	if row.Order < 0 {
		return "order must be non-negative"
	}
	return ""
}

// ParseWorkbook reads the first sheet of an xlsx file and returns the valid
// rows plus one ImportError per invalid row. Rows after the header that are
// entirely empty are skipped.
func ParseWorkbook(r io.Reader) ([]GalleryRow, []ImportError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rawRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	var (
		rows       []GalleryRow
		importErrs []ImportError
	)
	for i, raw := range rawRows {
		if i < headerRowCount || rowIsEmpty(raw) {
			continue
		}

		sheetRow := i + 1
		row, parseErr := parseRow(sheetRow, raw)
		if parseErr != "" {
			importErrs = append(importErrs, ImportError{Row: sheetRow, Error: parseErr})
			continue
		}
		if msg := ValidateRow(row); msg != "" {
			importErrs = append(importErrs, ImportError{Row: sheetRow, Error: msg})
			continue
		}
		rows = append(rows, row)
	}

	return rows, importErrs, nil
}

// ToItem converts a validated row into a gallery item ready to store.
func ToItem(row GalleryRow) models.GalleryItem {
	return models.GalleryItem{
		Title:        strings.TrimSpace(row.Title),
		Description:  strings.TrimSpace(row.Description),
		ImageURL:     strings.TrimSpace(row.ImageURL),
		ThumbnailURL: strings.TrimSpace(row.ThumbnailURL),
		CategoryID:   strings.TrimSpace(row.CategoryID),
		Order:        row.Order,
		IsActive:     row.IsActive,
		IsFeatured:   row.IsFeatured,
	}
}

func parseRow(sheetRow int, raw []string) (GalleryRow, string) {
	row := GalleryRow{
		Row:          sheetRow,
		Title:        cell(raw, colTitle),
		Description:  cell(raw, colDescription),
		ImageURL:     cell(raw, colImageURL),
		ThumbnailURL: cell(raw, colThumbnailURL),
		CategoryID:   cell(raw, colCategoryID),
	}

	if orderStr := strings.TrimSpace(cell(raw, colOrder)); orderStr != "" {
		order, err := strconv.Atoi(orderStr)
		if err != nil {
			return GalleryRow{}, "order must be an integer"
		}
		row.Order = order
	}

	row.IsActive = parseFlag(cell(raw, colIsActive))
	row.IsFeatured = parseFlag(cell(raw, colIsFeatured))

	return row, ""
}

func cell(raw []string, idx int) string {
	if idx >= len(raw) {
		return ""
	}
	return raw[idx]
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func rowIsEmpty(raw []string) bool {
	for _, v := range raw {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
