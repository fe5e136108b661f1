package nickel

import "testing"

// --- seq: forces its first argument to WHNF, then yields the second --------------

func Test_OpsMisc_Seq_ForcesFirstArgument(t *testing.T) {
	evalErr(t, `%seq% (1/0) 37`)
}

func Test_OpsMisc_Seq_YieldsSecondArgumentUnchanged(t *testing.T) {
	wantNum(t, evalSrc(t, `%seq% 1 37`), 37)
}

func Test_OpsMisc_Seq_DoesNotForceBelowWhnf(t *testing.T) {
	// the first argument only needs to reach WHNF: a record whose field is a
	// division by zero must not be forced by %seq%, only the record shell.
	wantNum(t, evalSrc(t, `%seq% { a = 1/0 } 37`), 37)
}

// --- deep_seq: forces its first argument recursively, then yields the second -----

func Test_OpsMisc_DeepSeq_ForcesNestedFields(t *testing.T) {
	evalErr(t, `%deep_seq% { a = 1/0, b = 2 } 0`)
}

func Test_OpsMisc_DeepSeq_YieldsSecondArgumentUnchanged(t *testing.T) {
	wantNum(t, evalSrc(t, `%deep_seq% { a = 1, b = 2 } 0`), 0)
}

func Test_OpsMisc_DeepSeq_ForcesThroughLists(t *testing.T) {
	evalErr(t, `%deep_seq% [1, 2, 1/0] "ok"`)
}
