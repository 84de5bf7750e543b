// Package dataset reads grain records from delimited files.
package dataset

import (
	"bufio"
	"encoding/csv"
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"rice-lab/domain"
	"rice-lab/errors"

	"github.com/gabriel-vasile/mimetype"
)

// ReadCSV parses a header line followed by rows of four descriptors and a class.
// The first malformed row aborts the whole read, nothing partial is returned.
func ReadCSV(r io.Reader) ([]domain.Record, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: no header row", errors.ErrData)
		}
		return nil, readFailure("header", err)
	}

	var records []domain.Record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, readFailure("row", err)
		}
		line, _ := reader.FieldPos(0)
		record, err := domain.ParseRecord(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no data rows after header", errors.ErrData)
	}
	return records, nil
}

// LoadCSV opens path, rejects anything that does not look like text and parses it with ReadCSV.
func LoadCSV(path string) ([]domain.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrIO, err)
	}
	defer file.Close()

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrIO, err)
	}
	if !isText(mt) {
		return nil, fmt.Errorf("%w: %s is %s, expected a delimited text file", errors.ErrIO, path, mt.String())
	}
	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrIO, err)
	}
	return ReadCSV(file)
}

// readFailure separates malformed csv syntax from a source that stopped being readable.
func readFailure(what string, err error) error {
	var parseErr *csv.ParseError
	if goerrors.As(err, &parseErr) {
		return fmt.Errorf("line %d: %w: %s: %v", parseErr.StartLine, errors.ErrParse, what, parseErr.Err)
	}
	return fmt.Errorf("%w: %s: %v", errors.ErrIO, what, err)
}

func isText(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
