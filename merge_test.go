package nickel

import "testing"

func Test_Merge_DisjointFields_Union(t *testing.T) {
	v := evalSrc(t, `({ x = 1 } & { y = 2 }).x`)
	wantNum(t, v, 1)
	v = evalSrc(t, `({ x = 1 } & { y = 2 }).y`)
	wantNum(t, v, 2)
}

func Test_Merge_Idempotent_OnEqualValues(t *testing.T) {
	wantNum(t, evalSrc(t, `({ x = 1 } & { x = 1 }).x`), 1)
}

func Test_Merge_Commutative_OnEqualValues(t *testing.T) {
	a := evalSrc(t, `({ x = 1, y = 2 } & { y = 2, z = 3 }).z`)
	b := evalSrc(t, `({ y = 2, z = 3 } & { x = 1, y = 2 }).z`)
	wantNum(t, a, 3)
	wantNum(t, b, 3)
}

func Test_Merge_ConflictingValues_IsRuntimeError(t *testing.T) {
	evalErr(t, `{ x = 1 } & { x = 2 }`)
}

func Test_Merge_DefaultYieldsToNormalPriority(t *testing.T) {
	wantNum(t, evalSrc(t, `({ x | default = 1 } & { x = 2 }).x`), 2)
	wantNum(t, evalSrc(t, `({ x = 2 } & { x | default = 1 }).x`), 2)
}

func Test_Merge_BothDefault_StillConflictsIfUnequal(t *testing.T) {
	evalErr(t, `{ x | default = 1 } & { x | default = 2 }`)
}

func Test_Merge_NestedRecords_RecurseOnSharedKeys(t *testing.T) {
	v := evalSrc(t, `({ a = { x = 1 } } & { a = { y = 2 } }).a.y`)
	wantNum(t, v, 2)
}

func Test_Merge_NonRecordOperand_IsTypeError(t *testing.T) {
	evalErr(t, `1 & { x = 1 }`)
}

func Test_Merge_ViaPrimopAlias(t *testing.T) {
	wantNum(t, evalSrc(t, `(%merge% { x = 1 } { y = 2 }).y`), 2)
}
