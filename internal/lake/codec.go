// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package lake

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// maxRecordSize bounds one NDJSON line. appdetails payloads with long
// descriptions run to a few hundred KB.
const maxRecordSize = 8 << 20

// ErrInvalidBatch is returned when a batch file is neither a JSON array
// nor newline-delimited JSON objects.
var ErrInvalidBatch = errors.New("invalid batch")

// ReadRecords reads a batch encoded as a JSON array or as NDJSON.
func ReadRecords(r io.Reader) ([]json.RawMessage, error) {
	br := bufio.NewReaderSize(r, 64<<10)
	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	if first == '[' {
		data, err := io.ReadAll(br)
		if err != nil {
			return nil, err
		}
		var records []json.RawMessage
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBatch, err)
		}
		if records == nil {
			records = []json.RawMessage{}
		}
		return records, nil
	}

	records := []json.RawMessage{}
	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 0, 64<<10), maxRecordSize)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		if b[0] != '{' || !json.Valid(b) {
			return nil, fmt.Errorf("%w: line %d is not a JSON object", ErrInvalidBatch, line)
		}
		records = append(records, json.RawMessage(bytes.Clone(b)))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBatch, err)
	}
	return records, nil
}

// WriteNDJSON writes each record compacted onto its own line.
func WriteNDJSON(w io.Writer, records []json.RawMessage) error {
	bw := bufio.NewWriter(w)
	var buf bytes.Buffer
	for i, rec := range records {
		buf.Reset()
		if err := json.Compact(&buf, rec); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := bw.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodeAppDetails decodes raw records. A record that fails to decode is
// reported with its index.
func DecodeAppDetails(records []json.RawMessage) ([]AppDetails, error) {
	out := make([]AppDetails, 0, len(records))
	for i, rec := range records {
		var d AppDetails
		if err := json.Unmarshal(rec, &d); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}
