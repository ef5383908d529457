package io

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	bxerrors "github.com/vpoulailleau/boxaro/pkg/errors"
	"github.com/vpoulailleau/boxaro/pkg/parser"
)

// Encoding names the character set a source was decoded from.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "iso-8859-1"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Source is a decoded input document.
type Source struct {
	Path     string   // File path, empty when read from a stream
	Text     string   // Decoded text
	Encoding Encoding // Encoding the bytes were decoded from
	Raw      []byte   // Undecoded bytes, used for cache keys
}

// Lines splits the text into lines without terminators.
func (s *Source) Lines() []string { return parser.SplitLines(s.Text) }

// Decode converts raw bytes to text: UTF-8 (BOM removed) when valid,
// ISO-8859-1 otherwise.
func Decode(b []byte) (string, Encoding, error) {
	if utf8.Valid(b) {
		return string(bytes.TrimPrefix(b, utf8BOM)), EncodingUTF8, nil
	}
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", "", bxerrors.Wrap(bxerrors.ErrCodeDecode, err, "input is neither UTF-8 nor ISO-8859-1")
	}
	return string(text), EncodingLatin1, nil
}

// ReadSource reads r to the end and decodes it. ReadSource does not close r.
func ReadSource(r io.Reader) (*Source, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, bxerrors.Wrap(bxerrors.ErrCodeInvalidInput, err, "read source")
	}
	text, enc, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return &Source{Text: text, Encoding: enc, Raw: raw}, nil
}

// ImportFile reads and decodes the file at path.
func ImportFile(path string) (*Source, error) {
	if err := bxerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, bxerrors.Wrap(bxerrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, bxerrors.Wrap(bxerrors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	src, err := ReadSource(f)
	if err != nil {
		return nil, err
	}
	src.Path = path
	return src, nil
}
