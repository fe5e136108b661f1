// label.go — contract labels (spec §4.5).
//
// A Label rides along every `assume` call: it names the contract being
// checked (Tag), the source span the annotation came from, which party is
// currently on the hook (Polarity), and the path walked to reach the value
// under check (record fields, `[i]` list positions, `dom`/`codom` of an
// arrow). Grounded on spec.md's "Label{span, tag,
// polarity, path}" directly — no teacher analogue, since the teacher has no
// contract system.
package nickel

import "strings"

// Polarity names which party is blamed if the contract under check fails.
type Polarity int

const (
	// PolarityPositive blames the value's provider: the value flows out of
	// a context the annotation describes directly.
	PolarityPositive Polarity = iota
	// PolarityNegative blames the value's consumer: the value flows into a
	// function argument position, where the *caller* promised the shape.
	PolarityNegative
)

// Flip returns the opposite polarity (spec: "polarity flips on entering an
// arrow's domain").
func (p Polarity) Flip() Polarity {
	if p == PolarityPositive {
		return PolarityNegative
	}
	return PolarityPositive
}

// Label accumulates blame-attribution context as a value is threaded through
// nested contracts.
type Label struct {
	Span     *Span
	Tag      string // human-readable contract description, e.g. "Num", "List Str", "{ x: Num, .. }"
	Polarity Polarity
	Path     []string // contract path walked so far (fields, "[i]", "dom"/"codom"), outermost first
}

// NewLabel starts a fresh blame trail for a top-level annotation.
func NewLabel(span *Span, tag string) *Label {
	return &Label{Span: span, Tag: tag, Polarity: PolarityPositive}
}

// WithTag returns a copy of l describing a different contract (used when
// descending into a structural contract's sub-contracts).
func (l *Label) WithTag(tag string) *Label {
	n := *l
	n.Tag = tag
	return &n
}

// FlipPolarity returns a copy of l with the opposite polarity, used when
// `assume` descends into an Arrow contract's domain.
func (l *Label) FlipPolarity() *Label {
	n := *l
	n.Polarity = l.Polarity.Flip()
	return &n
}

// Descend returns a copy of l with field appended to the path, used when
// `assume` descends into a record field, a list element, or an arrow's
// domain/codomain.
func (l *Label) Descend(field string) *Label {
	n := *l
	n.Path = append(append([]string{}, l.Path...), field)
	return &n
}

// PathString renders the path for diagnostics, e.g. "config.server.port".
func (l *Label) PathString() string {
	if len(l.Path) == 0 {
		return "<root>"
	}
	return strings.Join(l.Path, ".")
}

// Blame raises a BlameError attributing the failure to l's current party.
func (l *Label) Blame(msg string) *BlameError {
	return &BlameError{Label: l, Msg: msg}
}
