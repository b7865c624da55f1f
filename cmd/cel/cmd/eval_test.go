package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/go-cel/internal/interp"
)

func TestSortedIDs(t *testing.T) {
	got := sortedIDs([]int64{5, 1, 4, 2})
	want := []int64{1, 2, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sortedIDs = %v, want %v", got, want)
		}
	}
}

func TestBuildActivationFromBindings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vars.json")
	content := `{"x": 41, "__unknown__": ["claims.*"]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	bindingsFile = path
	defer func() { bindingsFile = "" }()

	vars, err := buildActivation()
	if err != nil {
		t.Fatal(err)
	}
	if _, found := vars.ResolveName("x"); !found {
		t.Error("x binding missing")
	}
	partial, ok := vars.(interp.PartialActivation)
	if !ok {
		t.Fatal("expected a partial activation")
	}
	if len(partial.UnknownAttributePatterns()) != 1 {
		t.Errorf("patterns = %d, want 1", len(partial.UnknownAttributePatterns()))
	}
}

func TestBuildActivationEmpty(t *testing.T) {
	bindingsFile = ""
	vars, err := buildActivation()
	if err != nil {
		t.Fatal(err)
	}
	if _, found := vars.ResolveName("anything"); found {
		t.Error("empty activation must resolve nothing")
	}
}
