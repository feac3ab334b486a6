// Package okpaint renders ROOT plot objects into drawing calls.
//
// Plot objects (boxes, ellipses, pies, polylines, markers, text and serialized
// painting programs) are translated from data space into device space and
// sent to a drawing backend as SVG path data and text requests.
//
// The work is split into small packages:
//
//   - coords maps data coordinates to device pixels and back
//   - attr holds the line, fill, marker and text attributes and the ROOT palette
//   - svgpath builds and coalesces path data, and parses it back for raster backends
//   - painting interprets the compact TWebPainting command stream
//   - shapes translates individual objects into paths
//   - rootio reads objects from ROOT JSON and XML
//   - textmetrics measures texts with the Go fonts
//   - svgdraw defines the backend contract; svgdoc, svgraster and svgpdf implement it
//
// See the command okpaint for an end to end usage.
package okpaint
