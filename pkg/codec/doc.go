// Package codec describes the byte layout of SWMM binary results files.
//
// All integers are 4-byte little-endian signed values, all result values are
// 4-byte little-endian IEEE floats and dates are 8-byte little-endian doubles
// holding a day count.
//
// # File Layout
//
//	[Prologue(28)][Names][PollutantUnits][Properties][Variables][Epilogue(12)][Results][Trailer(24)]
//
// Prologue fields, in order:
//   - Magic: MagicNumber, repeated at the end of the file
//   - Version: engine version that wrote the file
//   - FlowUnits: flow unit code
//   - Subcatchments, Nodes, Links, Pollutants: element counts
//
// The name table holds one [Length(4)][Bytes] entry per element in the
// order subcatchments, nodes, links, pollutants. No terminator is stored.
//
// The pollutant concentration unit codes (one int per pollutant) sit
// immediately before the property section. The property section has a fixed
// footprint derived from the element counts (see PropertyBlockSize), and is
// followed by the reported variable lists: a count then that many codes for
// subcatchments, nodes and links, then the system count and codes.
//
// The epilogue holds the start date (8 bytes) and report step in seconds (4
// bytes) and ends where the results section begins.
//
// Each results record is [Date(8)] followed by one value per (element,
// variable) in category order subcatchments, nodes, links, system. Every
// record has the same size, see BytesPerPeriod.
//
// The trailer is six fields: names offset, properties offset, results offset,
// number of periods, run status and MagicNumber.
//
// # Series Records
//
// SeriesRecord is a separate, CRC-checked encoding used to persist an
// extracted time series:
//
//	[CRC32(4)][KeySize(4)][Count(4)][Timestamp(8)][Key][Values(4*Count)]
//
// The CRC32 covers every field after itself.
package codec
