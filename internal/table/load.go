package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Supported input encodings.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingLatin1      = "latin-1"
)

// Options controls how delimited text is decoded.
type Options struct {
	// Separator is the field delimiter. Zero means comma.
	Separator rune
	// Encoding names the byte encoding of the input. Empty means UTF-8.
	Encoding string
	// LazyQuotes allows stray quotes inside unquoted fields.
	LazyQuotes bool
}

// LoadStats counts the rows the loader accepted, padded, or skipped.
type LoadStats struct {
	Rows             int
	Padded           int
	SkippedLong      int
	SkippedMalformed int
}

// Skipped returns the total number of rows dropped during loading.
func (s LoadStats) Skipped() int {
	return s.SkippedLong + s.SkippedMalformed
}

// Load reads the delimited file at path.
func Load(path string, opts Options) (Table, LoadStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, LoadStats{}, fmt.Errorf("open table: %w", err)
	}
	defer file.Close()

	t, stats, err := Read(file, opts)
	if err != nil {
		return Table{}, stats, fmt.Errorf("read table %s: %w", path, err)
	}
	return t, stats, nil
}

// Read parses delimited text from r. The first record is the header.
func Read(r io.Reader, opts Options) (Table, LoadStats, error) {
	decoded, err := decodingReader(r, opts.Encoding)
	if err != nil {
		return Table{}, LoadStats{}, err
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = opts.LazyQuotes
	if opts.Separator != 0 {
		reader.Comma = opts.Separator
	}

	header, err := readHeader(reader)
	if err != nil {
		return Table{}, LoadStats{}, err
	}

	var stats LoadStats
	rows := make([][]string, 0, 256)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				stats.SkippedMalformed++
				continue
			}
			return Table{}, stats, fmt.Errorf("read record: %w", err)
		}
		switch {
		case len(record) > len(header):
			stats.SkippedLong++
			continue
		case len(record) < len(header):
			padded := make([]string, len(header))
			copy(padded, record)
			record = padded
			stats.Padded++
		}
		rows = append(rows, record)
	}
	stats.Rows = len(rows)
	return New(header, rows), stats, nil
}

func readHeader(reader *csv.Reader) ([]string, error) {
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil, errors.New("read header: empty input")
		}
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		return uniqueColumns(record), nil
	}
}

// uniqueColumns trims header names and suffixes duplicates with ".1", ".2", …
func uniqueColumns(record []string) []string {
	columns := make([]string, len(record))
	seen := make(map[string]int, len(record))
	for i, name := range record {
		name = strings.TrimSpace(name)
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			columns[i] = name + "." + strconv.Itoa(n+1)
			continue
		}
		seen[name] = 0
		columns[i] = name
	}
	return columns
}

func decodingReader(r io.Reader, name string) (io.Reader, error) {
	var enc encoding.Encoding
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case EncodingWindows1252, "cp1252":
		enc = charmap.Windows1252
	case EncodingLatin1, "iso-8859-1", "latin1":
		enc = charmap.ISO8859_1
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc.NewDecoder().Reader(r), nil
}

// ValidEncoding reports whether name is an encoding Read understands.
func ValidEncoding(name string) bool {
	_, err := decodingReader(strings.NewReader(""), name)
	return err == nil
}
