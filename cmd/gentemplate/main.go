// Command gentemplate generates the Excel template for bulk gallery imports.
// Usage: go run cmd/gentemplate/main.go
package main

import (
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", "Gallery"); err != nil {
		log.Fatal(err)
	}

	headers := []string{"title", "description", "image_url", "thumbnail_url", "category_id", "order", "is_active", "is_featured"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Gallery", cell, h); err != nil {
			log.Fatal(err)
		}
	}

	examples := [][]string{
		{"Kombi Montajı", "Salon tipi kombi montajı", "/uploads/galeri/kombi-01.jpg", "/uploads/galeri/thumbs/kombi-01.jpg", "cat-kombi", "1", "true", "true"},
		{"Petek Değişimi", "", "https://cdn.example.com/petek-02.jpg", "", "cat-tesisat", "2", "true", "false"},
	}
	for rowIdx, row := range examples {
		for colIdx, v := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				log.Fatal(err)
			}
			if err := f.SetCellValue("Gallery", cell, v); err != nil {
				log.Fatal(err)
			}
		}
	}

	if _, err := f.NewSheet("Instructions"); err != nil {
		log.Fatal(err)
	}
	instructions := []string{
		"Column Descriptions:",
		"",
		"title - Required. Photo title shown in the gallery",
		"description - Optional. Longer caption",
		"image_url - Required. Absolute URL or site path starting with /",
		"thumbnail_url - Optional. Smaller preview image",
		"category_id - Optional. ID of an existing gallery category",
		"order - Optional. Display position, lower numbers first (default: 0)",
		"is_active - Optional. true/false/1/0/yes (default: false)",
		"is_featured - Optional. true/false/1/0/yes (default: false)",
	}
	for i, line := range instructions {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Instructions", cell, line); err != nil {
			log.Fatal(err)
		}
	}

	if err := os.MkdirAll("examples", 0755); err != nil {
		log.Fatal(err)
	}
	if err := f.SaveAs("examples/gallery-import-template.xlsx"); err != nil {
		log.Fatal(err)
	}
	log.Println("Created examples/gallery-import-template.xlsx")
}
