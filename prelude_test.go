package nickel

import "testing"

func Test_Prelude_List_Map(t *testing.T) {
	v := evalSrc(t, `std.list.map (fun x => x + 1) [1, 2, 3]`)
	lw, ok := asList(v)
	if !ok || len(lw) != 3 {
		t.Fatalf("want a 3-element list, got %#v", v)
	}
	wantNum(t, lw[0].whnf, 2)
	wantNum(t, lw[2].whnf, 4)
}

func Test_Prelude_List_Filter(t *testing.T) {
	v := evalSrc(t, `std.list.filter (fun x => x > 1) [1, 2, 3]`)
	lw, _ := asList(v)
	if len(lw) != 2 {
		t.Fatalf("want 2 elements, got %d", len(lw))
	}
}

func Test_Prelude_List_Fold(t *testing.T) {
	wantNum(t, evalSrc(t, `std.list.fold (fun acc => fun x => acc + x) 0 [1, 2, 3]`), 6)
}

func Test_Prelude_List_Any_All(t *testing.T) {
	wantBool(t, evalSrc(t, `std.list.any (fun x => x > 2) [1, 2, 3]`), true)
	wantBool(t, evalSrc(t, `std.list.any (fun x => x > 5) [1, 2, 3]`), false)
	wantBool(t, evalSrc(t, `std.list.all (fun x => x > 0) [1, 2, 3]`), true)
	wantBool(t, evalSrc(t, `std.list.all (fun x => x > 1) [1, 2, 3]`), false)
}

func Test_Prelude_List_Length_Head_Tail(t *testing.T) {
	wantNum(t, evalSrc(t, `std.list.length [1, 2, 3]`), 3)
	wantNum(t, evalSrc(t, `std.list.head [1, 2, 3]`), 1)
	tl, ok := asList(evalSrc(t, `std.list.tail [1, 2, 3]`))
	if !ok || len(tl) != 2 {
		t.Fatalf("want a 2-element tail, got %#v", tl)
	}
	wantNum(t, tl[0].whnf, 2)
}

func Test_Prelude_Record_Merge(t *testing.T) {
	wantNum(t, evalSrc(t, `(std.record.merge { x = 1 } { y = 2 }).y`), 2)
}

func Test_Prelude_Record_HasField(t *testing.T) {
	wantBool(t, evalSrc(t, `std.record.has_field { x = 1 } "x"`), true)
	wantBool(t, evalSrc(t, `std.record.has_field { x = 1 } "y"`), false)
}

func Test_Prelude_String_Upper_Lower(t *testing.T) {
	wantStr(t, evalSrc(t, `std.string.upper "abc"`), "ABC")
	wantStr(t, evalSrc(t, `std.string.lower "ABC"`), "abc")
}

func Test_Prelude_String_Contains(t *testing.T) {
	wantBool(t, evalSrc(t, `std.string.contains "hello" "ell"`), true)
}

func Test_Prelude_Num_ToStr(t *testing.T) {
	wantStr(t, evalSrc(t, `std.num.to_str 42`), "42")
}
