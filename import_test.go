package nickel

import "testing"

// mapResolver resolves import paths against an in-memory map, so import
// tests don't need a filesystem.
type mapResolver struct {
	files map[string]string
}

func (r *mapResolver) Resolve(fromSource SourceID, path string) (name, text string, err error) {
	text, ok := r.files[path]
	if !ok {
		return "", "", errNotFound(path)
	}
	return path, text, nil
}

type errNotFound string

func (e errNotFound) Error() string { return "no such file: " + string(e) }

func Test_Import_ResolvesAndEvaluates(t *testing.T) {
	ip := NewInterpreter(&mapResolver{files: map[string]string{
		"lib.ncl": "{ answer = 42 }",
	}})
	v, err := ip.EvalSourceDeep("<test>", `(import "lib.ncl").answer`)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	wantNum(t, v, 42)
}

func Test_Import_MemoizesAcrossMultipleImports(t *testing.T) {
	loads := 0
	ip := NewInterpreter(&countingResolver{files: map[string]string{"lib.ncl": "1"}, count: &loads})
	v, err := ip.EvalSourceDeep("<test>", `(import "lib.ncl") + (import "lib.ncl")`)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	wantNum(t, v, 2)
	if loads != 1 {
		t.Fatalf("want the resolver called once (memoized by source id), got %d", loads)
	}
}

type countingResolver struct {
	files map[string]string
	count *int
}

func (r *countingResolver) Resolve(fromSource SourceID, path string) (name, text string, err error) {
	text, ok := r.files[path]
	if !ok {
		return "", "", errNotFound(path)
	}
	*r.count++
	return path, text, nil
}

func Test_Import_CycleDetected(t *testing.T) {
	ip := NewInterpreter(&mapResolver{files: map[string]string{
		"a.ncl": `import "b.ncl"`,
		"b.ncl": `import "a.ncl"`,
	}})
	_, err := ip.EvalSourceDeep("<test>", `import "a.ncl"`)
	if err == nil {
		t.Fatalf("want an import cycle error, got none")
	}
}

func Test_Import_MissingFile_IsRuntimeError(t *testing.T) {
	ip := NewInterpreter(&mapResolver{files: map[string]string{}})
	_, err := ip.EvalSourceDeep("<test>", `import "missing.ncl"`)
	if err == nil {
		t.Fatalf("want an error for a missing import, got none")
	}
}

func Test_Import_NoResolverConfigured_IsRuntimeError(t *testing.T) {
	ip := NewInterpreter(nil)
	_, err := ip.EvalSourceDeep("<test>", `import "anything.ncl"`)
	if err == nil {
		t.Fatalf("want an error when no resolver is configured, got none")
	}
}
