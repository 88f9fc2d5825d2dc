// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Supported CSV encodings. Other IANA names are resolved as well.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF8SIG = "utf-8-sig"
	EncodingLatin1  = "latin-1"
	EncodingCP1252  = "cp1252"
)

// FallbackEncoding is used when the requested UTF-8 decoding fails.
const FallbackEncoding = EncodingLatin1

// ErrUnknownEncoding is returned for encoding names that cannot be resolved.
var ErrUnknownEncoding = errors.New("unknown text encoding")

var errInvalidUTF8 = errors.New("input is not valid utf-8")

// Encodings lists the encodings offered by the CLI.
var Encodings = []string{EncodingUTF8, EncodingUTF8SIG, EncodingLatin1, EncodingCP1252}

// CanonicalEncoding resolves an encoding name or alias to its canonical name.
func CanonicalEncoding(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", "-")
	switch key {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "utf-8-sig", "utf8-sig":
		return EncodingUTF8SIG, nil
	case "latin-1", "latin1", "iso-8859-1", "iso8859-1", "l1":
		return EncodingLatin1, nil
	case "cp1252", "windows-1252":
		return EncodingCP1252, nil
	}
	if enc, err := ianaindex.IANA.Encoding(key); err == nil && enc != nil {
		canonical, err := ianaindex.IANA.Name(enc)
		if err == nil {
			return strings.ToLower(canonical), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

func lookupEncoding(canonical string) (encoding.Encoding, error) {
	switch canonical {
	case EncodingUTF8, EncodingUTF8SIG:
		return unicode.UTF8BOM, nil
	case EncodingLatin1:
		return charmap.ISO8859_1, nil
	case EncodingCP1252:
		return charmap.Windows1252, nil
	}
	enc, err := ianaindex.IANA.Encoding(canonical)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, canonical)
	}
	return enc, nil
}

// ReadCSV reads a CSV table decoded with the named encoding. Input that is not
// valid UTF-8 under a UTF-8 encoding is re-decoded as latin-1; the encoding
// actually used is recorded on the table.
func ReadCSV(r io.Reader, encodingName string) (*Table, error) {
	canonical, err := CanonicalEncoding(encodingName)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	text, err := decode(data, canonical)
	if errors.Is(err, errInvalidUTF8) {
		canonical = FallbackEncoding
		text, err = decode(data, canonical)
	}
	if err != nil {
		return nil, fmt.Errorf("decode csv as %s: %w", canonical, err)
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	table, err := newTable(records)
	if err != nil {
		return nil, err
	}
	table.Encoding = canonical
	return table, nil
}

func decode(data []byte, canonical string) (string, error) {
	if canonical == EncodingUTF8 || canonical == EncodingUTF8SIG {
		if !utf8.Valid(data) {
			return "", errInvalidUTF8
		}
	}
	enc, err := lookupEncoding(canonical)
	if err != nil {
		return "", err
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
