// Package pkg provides the core libraries for Pagebind image-to-PDF conversion.
//
// # Overview
//
// Pagebind turns collections of images into paginated PDF documents,
// one page per image, with per-image control over page size, margins,
// rotation, scaling, and alignment. The pkg directory is organized
// into four main areas:
//
//  1. [layout], [units], [pagespec] - Domain logic (page geometry, unit
//     conversion, settings resolution)
//  2. [source], [render], [pdfops], [office] - Input and output (image
//     probing and decoding, PDF backends, document operations)
//  3. [cache], [observability], [errors] - Infrastructure
//  4. [pipeline] - Orchestration (probe → layout → render)
//
// # Architecture
//
// The typical data flow through Pagebind:
//
//	Images (directory or file list)
//	         ↓
//	source: resolve inputs, probe dimensions and EXIF orientation
//	         ↓
//	pagespec: resolve per-image settings (flags, config, mappings)
//	         ↓
//	layout: compute one page plan entry per image
//	         ↓
//	render: stream or raster backend writes the PDF
//
// The plan is a plain serializable structure, so it can be inspected,
// cached, and rendered by either backend with identical geometry.
package pkg
