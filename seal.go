// seal.go — polymorphic sealing (spec §4.5).
//
// Parametric polymorphism has no run-time representation to check against,
// so a forall-bound value is enforced by sealing: wrap it under a fresh,
// unforgeable symbol on the way in, and demand the same symbol on the way
// out. A primitive that inspects a sealed value (arithmetic, pattern
// match) finds a Wrapped term where it expected a plain one and raises a
// runtime type error; that error is not a contract blame and names no
// label or blamed party.
package nickel

// seal wraps value under sym, producing the Wrapped WHNF spec.md's
// "Forall" contract case stores on the negative-polarity path.
func seal(pos *Span, sym uint64, value *Term) *Term {
	return MkWrapped(pos, sym, value)
}

// unseal demands that value was sealed under sym; otherwise it blames label.
func unseal(label *Label, sym uint64, value *Term) *Term {
	if value.Tag != TWrapped {
		panic(label.Blame("polymorphic parameter used where concrete value expected"))
	}
	wd := value.Data.(*WrappedData)
	if wd.Sym != sym {
		panic(label.Blame("polymorphic value escaped its type parameter's scope"))
	}
	return wd.Inner
}
