package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-nmr/dsp/signal"
)

// ErrFormat is returned for rows that are not three numeric columns.
var ErrFormat = errors.New("dataset: malformed signal file")

// ReadSignal parses a three-column time/real/imaginary table. Blank lines and
// lines starting with '#' are skipped.
func ReadSignal(r io.Reader) (signal.Signal, error) {
	var s signal.Signal
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 3 {
			return signal.Signal{}, fmt.Errorf("%w: line %d: want 3 columns, got %d", ErrFormat, line, len(fields))
		}
		var row [3]float64
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return signal.Signal{}, fmt.Errorf("%w: line %d column %d: %w", ErrFormat, line, i+1, err)
			}
			row[i] = v
		}
		s.Time = append(s.Time, row[0])
		s.Re = append(s.Re, row[1])
		s.Im = append(s.Im, row[2])
	}
	if err := sc.Err(); err != nil {
		return signal.Signal{}, fmt.Errorf("dataset: read: %w", err)
	}
	return s, nil
}

// ReadFile parses the signal file at path.
func ReadFile(path string) (signal.Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	s, err := ReadSignal(f)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteSignal writes s as a tab-separated three-column table with
// round-trip precision.
func WriteSignal(w io.Writer, s signal.Signal) error {
	if len(s.Re) != len(s.Time) || len(s.Im) != len(s.Time) {
		return fmt.Errorf("dataset: write: %w: time=%d re=%d im=%d", signal.ErrShape, len(s.Time), len(s.Re), len(s.Im))
	}
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 96)
	for i := range s.Time {
		buf = buf[:0]
		buf = strconv.AppendFloat(buf, s.Time[i], 'g', -1, 64)
		buf = append(buf, '\t')
		buf = strconv.AppendFloat(buf, s.Re[i], 'g', -1, 64)
		buf = append(buf, '\t')
		buf = strconv.AppendFloat(buf, s.Im[i], 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("dataset: write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("dataset: write: %w", err)
	}
	return nil
}

// WriteFile writes s to path, replacing any existing file.
func WriteFile(path string, s signal.Signal) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("dataset: %w", cerr)
		}
	}()
	return WriteSignal(f, s)
}
