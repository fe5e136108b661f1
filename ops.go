// ops.go — primitive operator names (spec §4.3, §6).
//
// Op is just a string (term.go), so the operator "table" is naturally
// extensible data rather than a closed Go enum — the teacher's own
// string-keyed builtin-name convention (daios-ai-msg/builtin_strings.go's
// RegisterNative(name, impl)) generalized from a flat builtin namespace to
// per-arity Op1/Op2/OpN dispatch. The parser emits these same names when it
// builds Op1/Op2/OpN nodes, so this file is the shared vocabulary between
// parser.go and the register*Ops files.
package nickel

const (
	OpNeg     Op = "neg"
	OpNot     Op = "not"
	OpRound   Op = "round"
	OpCeil    Op = "ceil"
	OpFloor   Op = "floor"
	OpAdd     Op = "+"
	OpSub     Op = "-"
	OpMul     Op = "*"
	OpDiv     Op = "/"
	OpMod     Op = "%"
	OpEq      Op = "=="
	OpNeq     Op = "!="
	OpLt      Op = "<"
	OpLeq     Op = "<="
	OpGt      Op = ">"
	OpGeq     Op = ">="
	OpAnd     Op = "&&"
	OpOr      Op = "||"
	OpMerge   Op = "&"

	OpStrLen       Op = "str_length"
	OpStrSplit     Op = "str_split"
	OpStrTrim      Op = "str_trim"
	OpStrChars     Op = "str_chars"
	OpStrUpper     Op = "str_upper"
	OpStrLower     Op = "str_lower"
	OpStrContains  Op = "str_contains"
	OpStrReplace      Op = "str_replace"
	OpStrReplaceRegex Op = "str_replace_regex"
	OpStrSubstring    Op = "str_substring"
	OpStrCharCode  Op = "str_char_code"
	OpStrFromCode  Op = "str_from_code"
	OpStrIsMatch   Op = "str_is_match"
	OpStrMatch     Op = "str_match"
	OpStrConcat    Op = "str_concat"
	OpStrToNum     Op = "str_to_num"
	OpNumToStr     Op = "num_to_str"

	OpListHead     Op = "list_head"
	OpListTail     Op = "list_tail"
	OpListLength   Op = "list_length"
	OpListElemAt   Op = "list_elem_at"
	OpListMap      Op = "list_map"
	OpListGenerate Op = "list_generate"
	OpListConcat   Op = "list_concat"
	OpListFlatten  Op = "list_flatten"
	OpListFold     Op = "list_fold"
	OpListFilter   Op = "list_filter"
	OpListSort     Op = "list_sort"
	OpListReverse  Op = "list_reverse"
	OpListRange    Op = "list_range"

	OpRecordFields   Op = "record_fields"
	OpRecordValues   Op = "record_values"
	OpRecordHasField Op = "record_has_field"
	OpRecordMap      Op = "record_map"
	OpRecordExtend   Op = "record_extend"
	OpRecordRemove   Op = "record_remove"

	OpHashMd5    Op = "hash_md5"
	OpHashSha1   Op = "hash_sha1"
	OpHashSha256 Op = "hash_sha256"
	OpHashSha512 Op = "hash_sha512"

	OpSerializeJson     Op = "serialize_json"
	OpDeserializeJson   Op = "deserialize_json"
	OpSerializeYaml     Op = "serialize_yaml"
	OpDeserializeYaml   Op = "deserialize_yaml"
	OpSerializeToml     Op = "serialize_toml"
	OpDeserializeToml   Op = "deserialize_toml"

	opMergeAlias Op = "merge" // %merge% primop-reference spelling, see merge.go

	// Strictness marks (spec §4.2, §4.3): force a term to/beyond WHNF, then
	// yield a second term unchanged. Implemented in ops_misc.go.
	OpSeq     Op = "seq"
	OpDeepSeq Op = "deep_seq"

	// Label inspection (spec §4.4, §4.5): a custom contract's first
	// argument is a label value, forwarded to these to raise or customize
	// its own blame. Implemented in ops_misc.go.
	OpBlame     Op = "blame"
	OpTag       Op = "tag"
	OpBlameWith Op = "blame_with"
)

// opArity tells the `%name%` primop-reference parser (parser.go) how many
// immediately-following argument expressions to fold into a single
// Op1/Op2/OpN node, mirroring each operator's register*Ops implementation.
var opArity = map[Op]int{
	OpNeg: 1, OpNot: 1, OpRound: 1, OpCeil: 1, OpFloor: 1,
	OpAdd: 2, OpSub: 2, OpMul: 2, OpDiv: 2, OpMod: 2,
	OpEq: 2, OpNeq: 2, OpLt: 2, OpLeq: 2, OpGt: 2, OpGeq: 2,
	OpAnd: 2, OpOr: 2, OpMerge: 2, opMergeAlias: 2,

	OpStrLen: 1, OpStrSplit: 2, OpStrTrim: 1, OpStrChars: 1,
	OpStrUpper: 1, OpStrLower: 1, OpStrContains: 2, OpStrReplace: 3,
	OpStrReplaceRegex: 3,
	OpStrSubstring:    3, OpStrCharCode: 1, OpStrFromCode: 1,
	OpStrIsMatch: 2, OpStrMatch: 2, OpStrConcat: 2,
	OpStrToNum: 1, OpNumToStr: 1,

	OpListHead: 1, OpListTail: 1, OpListLength: 1, OpListElemAt: 2,
	OpListMap: 2, OpListGenerate: 2, OpListConcat: 2, OpListFlatten: 1,
	OpListFold: 3, OpListFilter: 2, OpListSort: 2, OpListReverse: 1,
	OpListRange: 2,

	OpRecordFields: 1, OpRecordValues: 1, OpRecordHasField: 2,
	OpRecordMap: 2, OpRecordExtend: 3, OpRecordRemove: 2,

	OpHashMd5: 1, OpHashSha1: 1, OpHashSha256: 1, OpHashSha512: 1,

	OpSerializeJson: 1, OpDeserializeJson: 1,
	OpSerializeYaml: 1, OpDeserializeYaml: 1,
	OpSerializeToml: 1, OpDeserializeToml: 1,

	OpSeq: 2, OpDeepSeq: 2,
	OpBlame: 1, OpTag: 1, OpBlameWith: 2,
}
