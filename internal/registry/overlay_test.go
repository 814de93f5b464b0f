// ABOUTME: Tests for YAML phrase-pack loading and closed-world overlay application
// ABOUTME: Covers directory loading, unknown id rejection, and phrase merging

package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mauromedda/intent-router-go/internal/lang"
)

const samplePack = `language: en
commands:
  bug.fix:
    - sort out the bug
modes:
  debugging:
    - bug hunt
`

func TestLoadPacksAndApply(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(samplePack), 0o644); err != nil {
		t.Fatal(err)
	}
	// Non-YAML files are skipped.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore"), 0o644); err != nil {
		t.Fatal(err)
	}

	packs, err := LoadPacks(dir)
	if err != nil {
		t.Fatalf("LoadPacks: %v", err)
	}
	if len(packs) != 1 {
		t.Fatalf("pack count = %d; want 1", len(packs))
	}

	base, err := BuiltIn()
	if err != nil {
		t.Fatal(err)
	}
	merged, err := base.Apply(packs...)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	c, _ := merged.Command("bug.fix")
	if !containsPhrase(c.Phrases[lang.English], "sort out the bug") {
		t.Errorf("bug.fix en phrases missing overlay: %v", c.Phrases[lang.English])
	}
	m, _ := merged.Mode("debugging")
	if !containsPhrase(m.Phrases[lang.English], "bug hunt") {
		t.Errorf("debugging en phrases missing overlay: %v", m.Phrases[lang.English])
	}

	// Base registry must be untouched.
	orig, _ := base.Command("bug.fix")
	if containsPhrase(orig.Phrases[lang.English], "sort out the bug") {
		t.Error("Apply mutated the base registry")
	}
}

func TestLoadPacksMissingDir(t *testing.T) {
	t.Parallel()

	packs, err := LoadPacks(filepath.Join(t.TempDir(), "absent"))
	if err != nil || packs != nil {
		t.Errorf("LoadPacks(absent) = %v, %v; want nil, nil", packs, err)
	}
}

func TestApplyRejectsUnknownIDs(t *testing.T) {
	t.Parallel()

	base, err := BuiltIn()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := base.Apply(&PhrasePack{Language: "en", Commands: map[string][]string{"no.such": {"x"}}}); err == nil {
		t.Error("Apply(unknown command) = nil error; want closed-world rejection")
	}
	if _, err := base.Apply(&PhrasePack{Language: "en", Modes: map[string][]string{"no-such": {"x"}}}); err == nil {
		t.Error("Apply(unknown mode) = nil error; want closed-world rejection")
	}
}

func TestLoadPackRejectsUnknownLanguage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("language: tlh\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPack(path); err == nil {
		t.Error("LoadPack(unsupported language) = nil error; want error")
	}
}

func containsPhrase(list []string, want string) bool {
	for _, p := range list {
		if p == want {
			return true
		}
	}
	return false
}
