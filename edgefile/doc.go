// Package edgefile reads and writes the binary edge-file format and its
// ASCII counterpart.
//
// What:
//
//   - Binary layout: 16 bytes per edge, little-endian, U then V, no
//     header or delimiter. Star files use the same layout for
//     (node, representative) pairs.
//   - Reader / Writer: buffered cursors over that layout; ReadIntoStream
//     additionally drops consecutive parallel edges on ingest.
//   - ASCIIToBinary / BinaryToASCII: whitespace-separated integer
//     conversion with optional skipped header lines and a signed ID
//     offset applied before validation.
//   - CountNodes: the streaming pass used when the caller does not know
//     the node count; reports distinct nodes, the maximum ID and the
//     edge count.
//   - CheckStars: star-file verification — unique keys, representatives
//     present as fixed points, per-component sizes.
//
// Errors:
//
//   - Malformed input (odd file length, unparsable ASCII, IDs touching
//     a reserved sentinel after the offset) is reported as an error; the
//     converters stop at the first bad record.
package edgefile
