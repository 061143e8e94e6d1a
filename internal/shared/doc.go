// Package shared holds small helpers used across packages that carry no
// order-domain logic of their own.
//
//   - textenc: UTF-8 BOM tolerant readers for the CSV and JSON inputs
//   - testutil: a buffered slog handler for asserting on log output
package shared
