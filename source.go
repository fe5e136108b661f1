// source.go — the source map (spec data model, "Position").
//
// A SourceMap is the opaque-to-evaluation registry of source files the
// parser and diagnostics machinery consult. Grounded on the teacher's
// SourceRef{Name, Src, Spans} (daios-ai-msg/interpreter.go, spans.go):
// the same idea — keep the raw text alongside a byte-range side table —
// generalized to hold more than one file so that `import` can register new
// source files as they're loaded.
package nickel

import "fmt"

// SourceID identifies one registered source file.
type SourceID int

// Span is a byte range within one source file; positions are optional
// (`nil` for synthesized terms, matching spec's Position = "(source_id,
// start, end); optional").
type Span struct {
	Source SourceID
	Start  int
	End    int
}

// SourceMap owns the text of every file that has been parsed, indexed by
// SourceID, so that later diagnostics can render a caret snippet without
// needing the original caller to keep the text around.
type SourceMap struct {
	names []string
	texts []string
}

// NewSourceMap creates an empty registry.
func NewSourceMap() *SourceMap { return &SourceMap{} }

// Add registers a new source file and returns its SourceID.
func (sm *SourceMap) Add(name, text string) SourceID {
	sm.names = append(sm.names, name)
	sm.texts = append(sm.texts, text)
	return SourceID(len(sm.names) - 1)
}

// Name returns the registered name for id, or "<unknown>" if out of range.
func (sm *SourceMap) Name(id SourceID) string {
	if int(id) < 0 || int(id) >= len(sm.names) {
		return "<unknown>"
	}
	return sm.names[id]
}

// Text returns the registered text for id, or "" if out of range.
func (sm *SourceMap) Text(id SourceID) string {
	if int(id) < 0 || int(id) >= len(sm.texts) {
		return ""
	}
	return sm.texts[id]
}

// LineCol converts a byte offset within source id into a 1-based
// (line, column) pair, for diagnostics.
func (sm *SourceMap) LineCol(id SourceID, offset int) (line, col int) {
	text := sm.Text(id)
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	line, col = 1, 1
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func (s *Span) String() string {
	if s == nil {
		return "<synthesized>"
	}
	return fmt.Sprintf("%d:[%d,%d)", s.Source, s.Start, s.End)
}
