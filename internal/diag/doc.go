// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// A Diagnostic records severity, a stable Code (LEXnnnn for lexical findings,
// SYNnnnn for syntactic ones), a message, the primary byte span and the
// position that span starts at. Producers resolve that position through the
// line index of their own compilation unit before reporting, so nothing in
// this package needs access to source text.
//
// Phases talk to a Reporter. BagReporter collects into a Bag for later
// rendering (see internal/diagfmt); StreamReporter writes each diagnostic
// immediately as
//
//	<line>.<column>:<message>
//
// and MultiReporter fans out to both. No reporter deduplicates: two reports
// at the same position produce two entries.
package diag
