package corrections

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/gvdb/itemctl/pkg/constants"
	"github.com/gvdb/itemctl/pkg/errors"
)

// HeaderColumns names the columns of a reference sheet.
type HeaderColumns struct {
	Key       string `mapstructure:"key" yaml:"key"`
	Primary   string `mapstructure:"primary" yaml:"primary"`
	Secondary string `mapstructure:"secondary" yaml:"secondary"`
}

// DefaultHeaderColumns returns the column names of reference_matching.csv.
func DefaultHeaderColumns() HeaderColumns {
	return HeaderColumns{
		Key:       constants.ColumnKey,
		Primary:   constants.ColumnCorrectPrimary,
		Secondary: constants.ColumnCorrectSecondary,
	}
}

// Open reads corrections from the CSV file at path in the given format.
func Open(path string, format Format, cols HeaderColumns) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &errors.NotFoundError{Resource: "csv file", ID: path, Err: err}
		}
		return nil, errors.NewIOError("open", path, err)
	}
	defer f.Close()

	switch format {
	case FormatReference:
		return ReadHeaderCSV(f, path, cols)
	default:
		return ReadPositionalCSV(f, path)
	}
}

// ReadPositionalCSV reads header-less rows of key, primary and an optional
// secondary name. Rows with fewer than two columns are skipped; an empty
// secondary cell counts as absent.
func ReadPositionalCSV(r io.Reader, source string) ([]Row, error) {
	cr := newReader(r)

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(source, err)
		}
		if err := checkEncoding(cr, rec, source); err != nil {
			return nil, err
		}
		if len(rec) < 2 {
			continue
		}

		line, _ := cr.FieldPos(0)
		row := Row{
			Key:     strings.TrimSpace(rec[0]),
			Primary: strings.TrimSpace(rec[1]),
			Line:    line,
		}
		if len(rec) > 2 {
			if sec := strings.TrimSpace(rec[2]); sec != "" {
				row.Secondary = sec
				row.HasSecondary = true
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadHeaderCSV reads a reference sheet. Columns are matched by header name;
// rows without a key or without a corrected primary name carry no
// correction and are skipped.
func ReadHeaderCSV(r io.Reader, source string, cols HeaderColumns) ([]Row, error) {
	cr := newReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewParseError("csv", source, "missing header row", nil)
	}
	if err != nil {
		return nil, parseError(source, err)
	}
	if err := checkEncoding(cr, header, source); err != nil {
		return nil, err
	}

	pos := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}
	keyCol, ok := pos[cols.Key]
	if !ok {
		return nil, errors.NewParseError("csv", source, "missing column "+cols.Key, nil)
	}
	primaryCol, ok := pos[cols.Primary]
	if !ok {
		return nil, errors.NewParseError("csv", source, "missing column "+cols.Primary, nil)
	}
	secondaryCol, hasSecondaryCol := pos[cols.Secondary]

	cell := func(rec []string, i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(source, err)
		}
		if err := checkEncoding(cr, rec, source); err != nil {
			return nil, err
		}

		key, primary := cell(rec, keyCol), cell(rec, primaryCol)
		if key == "" || primary == "" {
			continue
		}

		line, _ := cr.FieldPos(0)
		row := Row{Key: key, Primary: primary, Line: line}
		if hasSecondaryCol {
			if sec := cell(rec, secondaryCol); sec != "" {
				row.Secondary = sec
				row.HasSecondary = true
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// newReader strips a UTF-8 BOM and accepts ragged rows and stray quotes.
// Other bytes pass through unchanged; checkEncoding rejects invalid UTF-8.
func newReader(r io.Reader) *csv.Reader {
	decoded := transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// checkEncoding fails on the first cell that is not valid UTF-8, so text in
// a legacy code page never reaches the items file.
func checkEncoding(cr *csv.Reader, rec []string, source string) error {
	for i, cell := range rec {
		if utf8.ValidString(cell) {
			continue
		}
		line, _ := cr.FieldPos(i)
		return &errors.ParseError{
			Format:  "csv",
			File:    source,
			Line:    line,
			Message: fmt.Sprintf("column %d is not valid UTF-8", i+1),
		}
	}
	return nil
}

func parseError(source string, err error) error {
	pe := errors.NewParseError("csv", source, err.Error(), err)
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		pe.Line = csvErr.Line
		pe.Message = csvErr.Err.Error()
	}
	return pe
}
