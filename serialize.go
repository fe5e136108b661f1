// serialize.go — Json/Yaml/Toml bridges (spec §6).
//
// Grounded on the teacher's `builtin_json.go` Value<->JSON convention
// (walk the tagged value, build/read a Go `any` tree, hand that to the
// stdlib codec) for JSON; YAML and TOML are new relative to the teacher
// and use the same Go-`any`-tree bridge, handed instead to the libraries
// `purpleidea-mgmt`'s go.mod carries for the same job (spec §2 Domain
// Stack). All three share one `termToGo`/`goToTerm` conversion since the
// three formats agree on the same dynamically-typed tree shape.
package nickel

import (
	"encoding/json"
	"fmt"
	"sort"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"
)

// termToGo converts a deep_seq'd Term into a plain Go value a codec can
// marshal. Closures/Wrapped values have no serialized form (spec §6:
// serialize operates over "plain data", never functions).
func termToGo(pos *Span, t *Term) any {
	switch t.Tag {
	case TNull:
		return nil
	case TBool:
		return t.Data.(bool)
	case TNum:
		return t.Data.(float64)
	case TStr:
		return t.Data.(string)
	case TEnum:
		return t.Data.(string)
	case TList:
		lw, _ := asList(t)
		out := make([]any, len(lw))
		for i, th := range lw {
			out[i] = termToGo(pos, th.whnf)
		}
		return out
	case TRecord:
		rw, _ := asRecord(t)
		out := make(map[string]any, len(rw.Fields))
		for name, th := range rw.Fields {
			out[name] = termToGo(pos, th.whnf)
		}
		return out
	default:
		panic(newRuntimeError(pos, "cannot serialize a %s", describeTag(t)))
	}
}

// goToTerm is termToGo's inverse, used after a codec unmarshals into `any`.
func goToTerm(pos *Span, v any) *Term {
	switch x := v.(type) {
	case nil:
		return Null(pos)
	case bool:
		return Bool(pos, x)
	case string:
		return Str(pos, x)
	case int:
		return Num(pos, float64(x))
	case int64:
		return Num(pos, float64(x))
	case float64:
		return Num(pos, x)
	case []any:
		out := make(ListWHNF, len(x))
		for i, e := range x {
			out[i] = EvaluatedThunk(goToTerm(pos, e))
		}
		return mk(TList, pos, out)
	case map[string]any:
		out := make(map[string]*Thunk, len(x))
		for k, e := range x {
			out[k] = EvaluatedThunk(goToTerm(pos, e))
		}
		return mk(TRecord, pos, &RecordWHNF{Fields: out})
	case map[any]any: // yaml.v3 may decode non-string-keyed maps this way
		out := make(map[string]*Thunk, len(x))
		for k, e := range x {
			out[fmt.Sprintf("%v", k)] = EvaluatedThunk(goToTerm(pos, e))
		}
		return mk(TRecord, pos, &RecordWHNF{Fields: out})
	default:
		panic(newRuntimeError(pos, "cannot deserialize value of type %T", x))
	}
}

// canonicalizeMaps copies the converted tree before it is handed to a
// codec. The copies are plain Go maps and carry no key order of their own,
// so the key order of the serialized output is whatever each codec emits
// for a Go map (records have no canonical field order to preserve).
func canonicalizeMaps(v any) any {
	switch x := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(x))
		for _, k := range keys {
			out[k] = canonicalizeMaps(x[k])
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = canonicalizeMaps(e)
		}
		return out
	default:
		return v
	}
}

func registerSerializeOps(ip *Interpreter) {
	ip.natives[OpSerializeJson] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		v := ip.deepSeq(args[0].Force(ip))
		data, err := json.MarshalIndent(canonicalizeMaps(termToGo(pos, v)), "", "  ")
		if err != nil {
			panic(newRuntimeError(pos, "json serialize: %v", err))
		}
		return Str(pos, string(data))
	}
	ip.natives[OpDeserializeJson] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		s := strArg(pos, args[0], ip, string(OpDeserializeJson))
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			panic(newRuntimeError(pos, "json deserialize: %v", err))
		}
		return goToTerm(pos, v)
	}
	ip.natives[OpSerializeYaml] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		v := ip.deepSeq(args[0].Force(ip))
		data, err := yaml.Marshal(canonicalizeMaps(termToGo(pos, v)))
		if err != nil {
			panic(newRuntimeError(pos, "yaml serialize: %v", err))
		}
		return Str(pos, string(data))
	}
	ip.natives[OpDeserializeYaml] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		s := strArg(pos, args[0], ip, string(OpDeserializeYaml))
		var v any
		if err := yaml.Unmarshal([]byte(s), &v); err != nil {
			panic(newRuntimeError(pos, "yaml deserialize: %v", err))
		}
		return goToTerm(pos, v)
	}
	ip.natives[OpSerializeToml] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		v := ip.deepSeq(args[0].Force(ip))
		data, err := toml.Marshal(canonicalizeMaps(termToGo(pos, v)))
		if err != nil {
			panic(newRuntimeError(pos, "toml serialize: %v", err))
		}
		return Str(pos, string(data))
	}
	ip.natives[OpDeserializeToml] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		s := strArg(pos, args[0], ip, string(OpDeserializeToml))
		var v any
		if err := toml.Unmarshal([]byte(s), &v); err != nil {
			panic(newRuntimeError(pos, "toml deserialize: %v", err))
		}
		return goToTerm(pos, v)
	}
}
