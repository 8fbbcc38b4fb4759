// Package render provides the PDF rendering backends.
//
// # Overview
//
// This package defines the [Renderer] interface consumed by the
// pipeline and hosts the two backends as subpackages:
//
//   - [stream]: writes each page into the PDF as it arrives, keeping at
//     most one image in memory. The default backend.
//   - [raster]: rasterizes each page to a pixel canvas at the target
//     DPI and wraps the canvases into a PDF at the end. Produces
//     pixel-exact pages at the cost of holding canvases in memory.
//
// Both backends consume identical page plans, so switching backends
// never changes the geometry of the output, only its encoding.
//
//	r := stream.New()
//	for _, page := range plan {
//	    if err := r.AddPage(page.Entry, page.Image); err != nil { ... }
//	}
//	err := r.Finish(out)
//
// [stream]: github.com/pagebind/pagebind/pkg/render/stream
// [raster]: github.com/pagebind/pagebind/pkg/render/raster
package render
