// Package dynamic resolves response-bank placeholders. The bank is an
// .xlsx workbook with one sheet per base name: column A holds display
// text, column B the output text, and cell D1 flags the sheet as
// single-select (TRUE) or numbered multi-entry (FALSE). A missing
// workbook or sheet is a soft miss, never an error.
package dynamic

import (
	"errors"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/chrisgosselin92/docgenautomation/internal/logging"
)

// ErrNoSheet reports that the bank has no sheet for the requested base
// name. Callers warn and leave the placeholder literal.
var ErrNoSheet = errors.New("no response sheet for name")

// Option is one selectable row of a response sheet.
type Option struct {
	Display string
	Output  string
}

// Sheet is the parsed form of one response sheet.
type Sheet struct {
	Name      string
	SingleUse bool
	Options   []Option
}

// Bank reads sheets out of the response workbook. A Bank opened against a
// missing file is usable; every lookup reports ErrNoSheet.
type Bank struct {
	file *excelize.File
	path string
}

// OpenBank opens the workbook at path. A missing or unreadable file
// yields an empty bank rather than an error.
func OpenBank(path string) *Bank {
	b := &Bank{path: path}
	f, err := excelize.OpenFile(path)
	if err != nil {
		logging.Get(logging.CategoryDynamic).Warnw("response bank unavailable",
			"path", path, "error", err)
		return b
	}
	b.file = f
	return b
}

// Close releases the workbook handle.
func (b *Bank) Close() error {
	if b.file == nil {
		return nil
	}
	return b.file.Close()
}

// Sheet parses the response sheet for base. Rows with an empty display or
// output cell are skipped. The first row is a header.
func (b *Bank) Sheet(base string) (*Sheet, error) {
	if b.file == nil {
		return nil, ErrNoSheet
	}
	rows, err := b.file.GetRows(base)
	if err != nil {
		return nil, ErrNoSheet
	}

	flag, err := b.file.GetCellValue(base, "D1")
	if err != nil {
		return nil, ErrNoSheet
	}

	s := &Sheet{
		Name:      base,
		SingleUse: strings.EqualFold(strings.TrimSpace(flag), "true"),
	}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 2 {
			continue
		}
		display := strings.TrimSpace(row[0])
		output := strings.TrimSpace(row[1])
		if display == "" || output == "" {
			continue
		}
		s.Options = append(s.Options, Option{Display: display, Output: output})
	}
	return s, nil
}
