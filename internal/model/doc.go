// Package model defines the core data structures used throughout biblescan.
//
// This package contains the following main types:
//   - BookRecord: One book element of a translation document
//   - ScanReport: The main scan result structure
//   - SimpleReport: A summarized, human-readable report
//   - Severity: Impact levels for data-quality findings
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (scanner, audit, report) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
