// Package id provides identifier generation and parsing utilities.
//
// This is the canonical source for identifiers across the itemd codebase:
//
//   - Sequence: a monotonically increasing integer counter used to assign
//     item identifiers. Values start at 1 and are never handed out twice.
//   - Parse / Format: strict base-10 conversion between path segments and
//     item identifiers. Anything that is not a plain integer is rejected.
//   - RequestID: random UUIDs used to correlate log lines with requests.
package id
