package nickel

import "testing"

// --- substring ---------------------------------------------------------------

func Test_OpsStr_Substring_InRange(t *testing.T) {
	wantStr(t, evalSrc(t, `%str_substring% "hello world" 0 5`), "hello")
	wantStr(t, evalSrc(t, `%str_substring% "hello world" 6 11`), "world")
}

func Test_OpsStr_Substring_OutOfRange_IsRuntimeError(t *testing.T) {
	evalErr(t, `%str_substring% "hi" 0 10`)
	evalErr(t, `%str_substring% "hi" -1 2`)
	evalErr(t, `%str_substring% "hi" 2 1`)
}

// --- ASCII char code conversions -----------------------------------------------

func Test_OpsStr_CharCode_InRange(t *testing.T) {
	wantNum(t, evalSrc(t, `%str_char_code% "A"`), 65)
}

func Test_OpsStr_CharCode_OutsideAscii_IsRuntimeError(t *testing.T) {
	evalErr(t, `%str_char_code% "é"`)
}

func Test_OpsStr_FromCode_InRange(t *testing.T) {
	wantStr(t, evalSrc(t, `%str_from_code% 65`), "A")
}

func Test_OpsStr_FromCode_OutsideAscii_IsRuntimeError(t *testing.T) {
	evalErr(t, `%str_from_code% 200`)
	evalErr(t, `%str_from_code% -1`)
}

// --- replace: literal and regex --------------------------------------------------

func Test_OpsStr_Replace_Literal(t *testing.T) {
	wantStr(t, evalSrc(t, `%str_replace% "a-b-c" "-" "_"`), "a_b_c")
}

func Test_OpsStr_ReplaceRegex(t *testing.T) {
	wantStr(t, evalSrc(t, `%str_replace_regex% "a1b2c3" "[0-9]" "_"`), "a_b_c_")
}

// --- regex match returns {match, index, groups} -----------------------------------

func Test_OpsStr_Match_Found(t *testing.T) {
	v := evalSrc(t, `%str_match% "foo123bar" "([a-z]+)([0-9]+)"`)
	rw, ok := asRecord(v)
	if !ok {
		t.Fatalf("want a record, got %#v", v)
	}
	wantStr(t, rw.Fields["match"].whnf, "foo123")
	wantNum(t, rw.Fields["index"].whnf, 0)
	groups, ok := asList(rw.Fields["groups"].whnf)
	if !ok || len(groups) != 2 {
		t.Fatalf("want a 2-element groups list, got %#v", rw.Fields["groups"].whnf)
	}
	wantStr(t, groups[0].whnf, "foo")
	wantStr(t, groups[1].whnf, "123")
}

func Test_OpsStr_Match_NotFound(t *testing.T) {
	v := evalSrc(t, `%str_match% "abc" "[0-9]+"`)
	rw, ok := asRecord(v)
	if !ok {
		t.Fatalf("want a record, got %#v", v)
	}
	wantStr(t, rw.Fields["match"].whnf, "")
	wantNum(t, rw.Fields["index"].whnf, -1)
	groups, ok := asList(rw.Fields["groups"].whnf)
	if !ok || len(groups) != 0 {
		t.Fatalf("want an empty groups list, got %#v", rw.Fields["groups"].whnf)
	}
}
