// Package excel reads Excel workbooks and CSV exports into raw string
// matrices. It deliberately does no interpretation: header detection,
// column mapping and coercion live in the normalize package.
package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Workbook is the raw content of one uploaded file: every sheet's cells
// as strings, plus the sheet order from the file.
type Workbook struct {
	Sheets     map[string][][]string
	SheetOrder []string
}

// Read parses an uploaded file by extension. Anything that is not .csv
// is treated as an Excel workbook.
func Read(filename string, data []byte) (*Workbook, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".csv" {
		return readCSV(filename, data)
	}
	return readWorkbook(filename, data)
}

func readWorkbook(filename string, data []byte) (*Workbook, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", filename, err)
	}
	defer f.Close()

	wb := &Workbook{Sheets: make(map[string][][]string)}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		wb.Sheets[name] = rows
		wb.SheetOrder = append(wb.SheetOrder, name)
	}

	log.Printf("[ExcelReader] Workbook %s read in %.2fms (%d sheets)",
		filename, float64(time.Since(startTime).Nanoseconds())/1e6, len(wb.SheetOrder))
	return wb, nil
}

func readCSV(filename string, data []byte) (*Workbook, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV %s: %w", filename, err)
		}
		rows = append(rows, record)
	}

	// A CSV behaves as a single-sheet workbook named after the file.
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	log.Printf("[ExcelReader] CSV %s read (%d rows)", filename, len(rows))
	return &Workbook{
		Sheets:     map[string][][]string{name: rows},
		SheetOrder: []string{name},
	}, nil
}
