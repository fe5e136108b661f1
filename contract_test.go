package nickel

import (
	"strings"
	"testing"
)

func wantContractError(t *testing.T, err error, party string) {
	t.Helper()
	if err == nil {
		t.Fatalf("want a contract error, got none")
	}
	if !strings.Contains(err.Error(), "CONTRACT ERROR") {
		t.Fatalf("want a contract error, got: %v", err)
	}
	if !strings.Contains(err.Error(), party) {
		t.Fatalf("want blame on the %s, got: %v", party, err)
	}
}

func evalSourceErr(t *testing.T, src string) error {
	t.Helper()
	ip := NewInterpreter(nil)
	_, err := ip.EvalSourceDeep("<test>", src)
	if err == nil {
		t.Fatalf("expected an error evaluating %q, got none", src)
	}
	return err
}

// --- scalar contracts ---------------------------------------------------------

func Test_Contract_Scalar_Pass(t *testing.T) {
	wantNum(t, evalSrc(t, "1 + 1 : Num"), 2)
}

func Test_Contract_Scalar_Fail_BlamesProvider(t *testing.T) {
	err := evalSourceErr(t, `"oops" : Num`)
	wantContractError(t, err, "provider")
}

// --- arrow contracts: caller vs provider polarity -----------------------------

// A badly-typed argument is the *caller's* fault: the domain contract's
// polarity flips on entering the arrow.
func Test_Contract_Arrow_BadArgument_BlamesCaller(t *testing.T) {
	err := evalSourceErr(t, `let f = (fun x => x + 1) : Num -> Num in f "bad"`)
	wantContractError(t, err, "caller")
}

// A function that lies about its own return type is the *provider's*
// fault: the codomain contract keeps positive polarity.
func Test_Contract_Arrow_BadReturn_BlamesProvider(t *testing.T) {
	err := evalSourceErr(t, `let f = (fun x => "not a num") : Num -> Num in f 1`)
	wantContractError(t, err, "provider")
}

func Test_Contract_Arrow_GoodFunction_Passes(t *testing.T) {
	wantNum(t, evalSrc(t, `let f = (fun x => x + 1) : Num -> Num in f 41`), 42)
}

// --- record contracts -----------------------------------------------------------

func Test_Contract_Record_MissingField_Fails(t *testing.T) {
	evalSourceErr(t, `{ x = 1 } : { x : Num, y : Num }`)
}

func Test_Contract_Record_ExtraField_Fails(t *testing.T) {
	evalSourceErr(t, `{ x = 1, y = 2 } : { x : Num }`)
}

func Test_Contract_Record_OpenTail_AllowsExtraFields(t *testing.T) {
	wantNum(t, evalSrc(t, `({ x = 1, y = 2 } : { x : Num, .. }).x`), 1)
}

// --- list contracts --------------------------------------------------------------

func Test_Contract_List_ElementMismatch_Fails(t *testing.T) {
	evalSourceErr(t, `[1, "two", 3] : List Num`)
}

func Test_Contract_List_AllElementsPass(t *testing.T) {
	v := evalSrc(t, `[1, 2, 3] : List Num`)
	lw, ok := asList(v)
	if !ok || len(lw) != 3 {
		t.Fatalf("want a 3-element list, got %#v", v)
	}
}

// --- flat (user-defined) contracts ------------------------------------------------

// A custom contract is a curried `fun label => fun value => ...` (spec
// §4.4): the label arrives first, so it can be forwarded to `blame`.
func Test_Contract_Flat_PredicateFalse_Fails(t *testing.T) {
	evalSourceErr(t, `5 | (fun label => fun x => x > 10)`)
}

func Test_Contract_Flat_PredicateTrue_Passes(t *testing.T) {
	wantNum(t, evalSrc(t, `15 | (fun label => fun x => x > 10)`), 15)
}

func Test_Contract_Flat_BlameCallsTheLabel(t *testing.T) {
	err := evalSourceErr(t, `5 | (fun label => fun x => if x > 10 then x else %blame% label)`)
	wantContractError(t, err, "provider")
}

func Test_Contract_Flat_TagReadsTheLabelsDescription(t *testing.T) {
	wantStr(t, evalSrc(t, `5 | (fun label => fun x => %tag% label)`), "<contract>")
}

func Test_Contract_Flat_BlameWith_CustomizesMessage(t *testing.T) {
	err := evalSourceErr(t, `5 | (fun label => fun x => %blame% (%blame_with% label "must be over 10"))`)
	wantContractError(t, err, "provider")
	if !strings.Contains(err.Error(), "must be over 10") {
		t.Fatalf("want the blame_with message in the error, got: %v", err)
	}
}

// --- Dyn is a no-op contract ------------------------------------------------------

func Test_Contract_Dyn_AcceptsAnything(t *testing.T) {
	wantStr(t, evalSrc(t, `"anything" : Dyn`), "anything")
}

// --- unbound type variables are rejected before elaboration (spec §4.6) -----------

func Test_Contract_UnboundTypeVar_IsRejected(t *testing.T) {
	evalSourceErr(t, `5 : a`)
}

func Test_Contract_TypeVar_BoundByForall_Passes(t *testing.T) {
	wantNum(t, evalSrc(t, `((fun x => x) : forall a. a -> a) 5`), 5)
}

func Test_Contract_UnboundTypeVar_InPatternAnnotation_IsRejected(t *testing.T) {
	evalSourceErr(t, `(fun { x : a } => x) { x = 5 }`)
}
