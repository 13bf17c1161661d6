package sigio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

func loadCSV(path string, column int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1
	r.Comment = '#'
	r.TrimLeadingSpace = true

	var out []float64
	for row := 0; ; row++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		v, ok, err := parseField(rec, column, row)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func loadText(path string, column int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []float64
	sc := bufio.NewScanner(f)
	for row := 0; sc.Scan(); row++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			row--
			continue
		}
		v, ok, err := parseField(strings.Fields(line), column, row)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, v)
		}
	}
	return out, sc.Err()
}

// parseField converts the selected column of one row. A non-numeric first row
// is taken as a header and skipped.
func parseField(fields []string, column, row int) (float64, bool, error) {
	if column >= len(fields) {
		return 0, false, fmt.Errorf("%w: row %d has %d columns, want column %d",
			ErrMalformed, row+1, len(fields), column)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(fields[column]), 64)
	if err != nil {
		if row == 0 {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%w: row %d: %q", ErrMalformed, row+1, fields[column])
	}
	return v, true, nil
}

func writeCSV(path string, x []float64) error {
	return writeLines(path, "value", x)
}

func writeText(path string, x []float64) error {
	return writeLines(path, "", x)
}

func writeLines(path, header string, x []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if header != "" {
		if _, err := w.WriteString(header + "\n"); err != nil {
			f.Close()
			return err
		}
	}
	buf := make([]byte, 0, 32)
	for _, v := range x {
		buf = strconv.AppendFloat(buf[:0], v, 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
