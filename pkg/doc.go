// Package pkg provides the libraries behind the boxaro diagram compiler.
//
// # Overview
//
// Boxaro reads an indentation-structured description of boxes, their input
// and output ports, their children and the connections between them, and
// compiles it into a Graphviz DOT document. Containers become clusters,
// ports become aligned plaintext nodes, and labeled connections that share
// a start fan out through a splitter node.
//
// # Architecture
//
// The data flow through boxaro:
//
//	bytes (UTF-8 or Latin-1)
//	     ↓
//	[io] package (decode, split lines)
//	     ↓
//	[parser] package (scope stack → diagram + diagnostics)
//	     ↓
//	[emit] package (diagram → structured DOT graph)
//	     ↓
//	[render] package (DOT, SVG, PNG, JPG, PDF)
//
// # Quick Start
//
//	res, err := parser.ParseString(src)
//	if err != nil {
//	    return err
//	}
//	for _, d := range res.Diagnostics {
//	    fmt.Println(d)
//	}
//	text, err := emit.ToDOT(res.Diagram, emit.Options{})
//
// # Main Packages
//
// [diagram] - Boxes, connections and the per-document registries.
//
// [parser] - The indentation parser. Line-level problems are returned as
// diagnostics; only a document without a box fails outright.
//
// [emit] - Builds the Graphviz graph: clusters, port ranks, anchors,
// splitters and alignment edges.
//
// [dot] - A small DOT document model and deterministic serializer.
//
// [render] - Graphviz layout and SVG/PNG/PDF conversion.
//
// [io] - Source decoding (UTF-8, Latin-1 fallback) and output files.
//
// [pipeline] - Decode → parse → emit → render with artifact caching, used by
// every CLI command.
//
// ## Infrastructure
//
// [cache] - Artifact caches: in-memory LRU, filesystem, tiered, null.
//
// [config] - TOML file, .env and environment configuration.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Pipeline and cache hooks.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/parser/...   # Specific package
//	go test -run Example       # Examples only
//
// [diagram]: https://pkg.go.dev/github.com/vpoulailleau/boxaro/pkg/diagram
// [parser]: https://pkg.go.dev/github.com/vpoulailleau/boxaro/pkg/parser
// [emit]: https://pkg.go.dev/github.com/vpoulailleau/boxaro/pkg/emit
// [dot]: https://pkg.go.dev/github.com/vpoulailleau/boxaro/pkg/dot
// [render]: https://pkg.go.dev/github.com/vpoulailleau/boxaro/pkg/render
// [io]: https://pkg.go.dev/github.com/vpoulailleau/boxaro/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/vpoulailleau/boxaro/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/vpoulailleau/boxaro/pkg/cache
// [config]: https://pkg.go.dev/github.com/vpoulailleau/boxaro/pkg/config
// [errors]: https://pkg.go.dev/github.com/vpoulailleau/boxaro/pkg/errors
// [observability]: https://pkg.go.dev/github.com/vpoulailleau/boxaro/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/vpoulailleau/boxaro/pkg/buildinfo
package pkg
