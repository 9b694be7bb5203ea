package xlsx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/geoirb/go-certgen/internal/parser"
	"github.com/geoirb/go-certgen/internal/record"
)

const (
	emptyHeader = "__EMPTY"
	xlsCharset  = "utf-8"
)

type fileType interface {
	Type(filename string) (string, error)
}

type readRowsFunc func(data []byte) ([][]string, error)

// Facade reads records from spreadsheets.
type Facade struct {
	readRows map[string]readRowsFunc

	fileType fileType
}

// NewFacade ...
func NewFacade(
	fileType fileType,
) *Facade {
	f := &Facade{
		fileType: fileType,
	}
	f.readRows = map[string]readRowsFunc{
		parser.XLSX: readXLSX,
		parser.XLS:  readXLS,
	}
	return f
}

// Records returns one record per data row of the first sheet, the first row is the header.
// A sheet without data rows gives an empty slice.
func (f *Facade) Records(filename string, data []byte) ([]*record.Record, error) {
	t, err := f.fileType.Type(filename)
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("%s: %w", filename, err)}
	}
	readRows, isExist := f.readRows[t]
	if !isExist {
		return nil, &ParseError{Err: fmt.Errorf("%w: %s", errUnknownType, t)}
	}
	rows, err := readRows(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return toRecords(rows), nil
}

func readXLSX(data []byte) (rows [][]string, err error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		err = errNoSheets
		return
	}
	return file.GetRows(sheets[0])
}

func readXLS(data []byte) (rows [][]string, err error) {
	// xls panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errMalformed, r)
		}
	}()

	workbook, err := xls.OpenReader(bytes.NewReader(data), xlsCharset)
	if err != nil {
		return
	}
	if workbook.NumSheets() == 0 {
		err = errNoSheets
		return
	}
	sheet := workbook.GetSheet(0)
	if sheet == nil {
		err = errNoSheets
		return
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return
}

func toRecords(rows [][]string) []*record.Record {
	records := make([]*record.Record, 0)
	if len(rows) == 0 {
		return records
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	header := headerNames(rows[0], width)

	for _, row := range rows[1:] {
		r := record.New()
		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			r.Set(header[colIdx], cellValue)
		}
		if r.Len() != 0 {
			records = append(records, r)
		}
	}
	return records
}

// headerNames names every column: blank header cells become __EMPTY and
// repeated names get _1, _2, ... suffix.
func headerNames(row []string, width int) []string {
	names := make([]string, width)
	counts := make(map[string]int)
	for colIdx := 0; colIdx < width; colIdx++ {
		base := emptyHeader
		if colIdx < len(row) {
			if h := strings.TrimSpace(row[colIdx]); h != "" {
				base = h
			}
		}
		name := base
		if n := counts[base]; n > 0 {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		counts[base]++
		names[colIdx] = name
	}
	return names
}
