// Package ingest turns raw ticket-export bytes into a normalized dataset.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/novetech/deskeval/schema"
	"golang.org/x/text/encoding/charmap"
)

// ErrUnreadableCSV wraps the last underlying cause when every reader
// configuration fails.
var ErrUnreadableCSV = errors.New("unable to read CSV under any configuration")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readAttempt is one (delimiter, parse mode, encoding) combination.
// A zero delimiter means "sniff from the first line".
type readAttempt struct {
	name      string
	delimiter rune
	strict    bool
	decode    func([]byte) ([]byte, error)
}

func decodeUTF8(data []byte) ([]byte, error) {
	if !utf8.Valid(data) {
		return nil, errors.New("input is not valid UTF-8")
	}
	return data, nil
}

func decodeUTF8BOM(data []byte) ([]byte, error) {
	return decodeUTF8(bytes.TrimPrefix(data, utf8BOM))
}

func decodeLatin1(data []byte) ([]byte, error) {
	return charmap.ISO8859_1.NewDecoder().Bytes(data)
}

// readAttempts is the fixed, ordered fallback sequence. Export tools disagree
// on delimiter and encoding, so the reader tries permissive auto-detection
// first, explicit delimiters next, and alternate encodings last.
var readAttempts = []readAttempt{
	{name: "auto/utf-8", delimiter: 0, strict: false, decode: decodeUTF8},
	{name: "semicolon/utf-8", delimiter: ';', strict: true, decode: decodeUTF8},
	{name: "comma/utf-8", delimiter: ',', strict: true, decode: decodeUTF8},
	{name: "tab/utf-8", delimiter: '\t', strict: true, decode: decodeUTF8},
	{name: "pipe/utf-8", delimiter: '|', strict: true, decode: decodeUTF8},
	{name: "auto/utf-8-bom", delimiter: 0, strict: false, decode: decodeUTF8BOM},
	{name: "auto/latin-1", delimiter: 0, strict: false, decode: decodeLatin1},
}

// ReadCSV parses raw export bytes by trying each reader configuration in
// order and returning the first successful parse, tagged with the winning
// configuration name. Malformed individual lines are skipped rather than
// aborting the parse. When every configuration fails, the last underlying
// error is propagated.
func ReadCSV(data []byte) (*schema.RawTable, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrUnreadableCSV)
	}

	var lastErr error
	for _, attempt := range readAttempts {
		decoded, err := attempt.decode(data)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", attempt.name, err)
			continue
		}

		delim := attempt.delimiter
		if delim == 0 {
			delim = sniffDelimiter(decoded)
		}

		table, err := parseTable(decoded, delim, attempt.strict)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", attempt.name, err)
			continue
		}
		table.ReadConfig = attempt.name
		return table, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrUnreadableCSV, lastErr)
}

// sniffDelimiter picks the delimiter that occurs most often in the first
// non-empty line, defaulting to comma.
func sniffDelimiter(data []byte) rune {
	var line string
	for l := range strings.Lines(string(data)) {
		if strings.TrimSpace(l) != "" {
			line = l
			break
		}
	}

	best, bestCount := ',', 0
	for _, cand := range []rune{';', ',', '\t', '|'} {
		if n := strings.Count(line, string(cand)); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}

// parseTable reads a header and data rows with the given delimiter. In
// strict mode the field count is pinned to the header; rows that fail to
// parse are skipped either way.
func parseTable(data []byte, delim rune, strict bool) (*schema.RawTable, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.TrimLeadingSpace = false
	if strict {
		r.FieldsPerRecord = 0 // pin to header width
	} else {
		r.LazyQuotes = true
		r.FieldsPerRecord = -1
	}

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue // skip malformed line
			}
			return nil, fmt.Errorf("reading rows: %w", err)
		}
		rows = append(rows, row)
	}

	return &schema.RawTable{Header: header, Rows: rows}, nil
}
