package driver

import (
	"tiger/internal/diag"
)

const defaultMaxDiagnostics = 100

// Options configures a driver run.
type Options struct {
	// MaxDiagnostics caps each unit's Bag. Zero means the default.
	MaxDiagnostics int
	// CharColumns reports columns in characters instead of bytes.
	CharColumns bool
	// Reporter receives every diagnostic in addition to the unit's Bag.
	// It must be safe for concurrent use when directories are parsed.
	Reporter diag.Reporter
	// UnitReporter, when set, gives ParseDir a reporter for each unit,
	// keyed by its slash-relative path. It replaces Reporter for that unit.
	UnitReporter func(rel string) diag.Reporter
	// Jobs bounds directory parallelism. Zero means GOMAXPROCS.
	Jobs int
	// Exclude lists glob patterns of files skipped by ParseDir.
	Exclude []string
	// Sink receives progress events from ParseDir.
	Sink ProgressSink
	// Cache stores per-unit outcomes for ParseDir. Cached units carry no AST.
	Cache *DiskCache
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) reporterFor(bag *diag.Bag) diag.Reporter {
	if o.Reporter == nil {
		return diag.BagReporter{Bag: bag}
	}
	return diag.MultiReporter{diag.BagReporter{Bag: bag}, o.Reporter}
}

func (o Options) emit(ev Event) {
	if o.Sink != nil {
		o.Sink.OnEvent(ev)
	}
}
