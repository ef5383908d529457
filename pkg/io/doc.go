// Package io reads boxaro sources and writes generated documents.
//
// # Encodings
//
// Sources are expected to be UTF-8. A leading byte order mark is dropped.
// Input that is not valid UTF-8 is decoded as ISO-8859-1 (Latin-1) instead,
// which maps every byte to a character, so legacy files written by Western
// European editors still parse:
//
//	src, err := io.ImportFile("system.bao")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(src.Encoding) // "utf-8" or "iso-8859-1"
//	res, err := parser.Parse(src.Lines())
//
// [ReadSource] does the same from any io.Reader.
//
// # Output
//
// [ExportFile] writes a rendered document to a path, creating missing parent
// directories. [WriteOutput] writes to any io.Writer.
//
// # Errors
//
// A missing input file is reported with the FILE_NOT_FOUND code, other read
// failures with INVALID_INPUT, and undecodable bytes with DECODE_ERROR (see
// package errors).
package io
