// Package main provides the entry point for the biblescan CLI.
//
// Biblescan reads Bible translation JSON files, reports every book
// abbreviation they contain, and cross-references the abbreviations
// against the multi-word book name table.
//
// Usage:
//
//	biblescan scan <file>
//	biblescan scan --dir <root>
//
// See --help for all available options.
package main

import "os"

// main is the entry point for biblescan.
func main() {
	os.Exit(Execute())
}
