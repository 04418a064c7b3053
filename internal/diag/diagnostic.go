package diag

import (
	"tiger/internal/source"
)

type Note struct {
	Span source.Span
	Pos  source.Position
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Pos      source.Position // Primary.Start resolved through the unit's line index
	Notes    []Note
}
