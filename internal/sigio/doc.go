// Package sigio reads and writes single-channel sensor recordings.
//
// The format follows the file extension: .csv and .txt hold one value per
// row (optionally several columns and a header line), .f64 holds raw
// little-endian float64 samples, and .parquet holds rows with a DOUBLE
// column named "value".
package sigio
