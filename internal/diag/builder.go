package diag

import "tiger/internal/source"

func New(sev Severity, code Code, primary source.Span, pos source.Position, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Pos:      pos,
		Message:  msg,
	}
}

func (d Diagnostic) WithNote(sp source.Span, pos source.Position, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Pos: pos, Msg: msg})
	return d
}
