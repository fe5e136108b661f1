// prelude.go — loads the standard library record (spec.md: "the standard
// library of helpers... is expressed in the language itself and is
// therefore data, not code").
//
// Grounded on purpleidea-mgmt/lang/core/core.go's embed-and-parse-once
// pattern (`//go:embed */*.mcl` then parsing each module at startup into
// the scope every program runs against); std.ncl plays the same role
// here as a single embedded source parsed once into Core rather than a
// directory of per-module files, since this language has one flat
// standard library record rather than mgmt's per-namespace module tree.
package nickel

import _ "embed"

//go:embed prelude/std.ncl
var preludeSrc string

// loadPrelude parses the embedded standard library source and binds it
// under the name "std" in ip.Core, where every program's Global env
// inherits it. Panics (rather than returning an error) on a parse
// failure, since a broken prelude is a build-time defect, not a
// runtime condition any caller could recover from.
func loadPrelude(ip *Interpreter) {
	src := ip.Sources.Add("<prelude>", preludeSrc)
	term, perr := ParseProgram(ip.Sources, src)
	if perr != nil {
		panic("nickel: prelude failed to parse: " + perr.Error())
	}
	th := NewThunk(term, NewEnv(ip.Core))
	ip.Core.Define("std", th)
}
