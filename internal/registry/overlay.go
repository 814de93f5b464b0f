// ABOUTME: YAML phrase-pack overlays extending built-in phrase lists per language
// ABOUTME: Closed-world: packs may only reference registered ids, never add candidates

package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/mauromedda/intent-router-go/internal/lang"
)

// PhrasePack is one overlay file: extra phrases for existing candidates in
// one language. New commands and modes cannot be introduced this way; the
// registries are closed unions extended in code.
type PhrasePack struct {
	Language string              `yaml:"language"`
	Commands map[string][]string `yaml:"commands"`
	Modes    map[string][]string `yaml:"modes"`
}

// LoadPack reads and validates a single phrase-pack file.
func LoadPack(path string) (*PhrasePack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read phrase pack %s: %w", path, err)
	}
	var p PhrasePack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse phrase pack %s: %w", path, err)
	}
	if err := p.validateLanguage(); err != nil {
		return nil, fmt.Errorf("phrase pack %s: %w", path, err)
	}
	return &p, nil
}

func (p *PhrasePack) validateLanguage() error {
	for _, tag := range lang.Supported {
		if p.Language == string(tag) {
			return nil
		}
	}
	return fmt.Errorf("unsupported language %q", p.Language)
}

// LoadPacks reads all YAML phrase packs from a directory in parallel.
// A missing directory yields no packs and no error.
func LoadPacks(dir string) ([]*PhrasePack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read phrase pack directory %s: %w", dir, err)
	}

	var (
		mu    sync.Mutex
		packs []*PhrasePack
		g     errgroup.Group
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		g.Go(func() error {
			p, err := LoadPack(path)
			if err != nil {
				return err
			}
			mu.Lock()
			packs = append(packs, p)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(packs, func(i, j int) bool { return packs[i].Language < packs[j].Language })
	return packs, nil
}

// Apply merges the pack's phrases into a copy of the registry's
// definitions and returns a new registry. Unknown ids are an error: a
// typo in a pack must not silently vanish.
func (r *Registry) Apply(packs ...*PhrasePack) (*Registry, error) {
	commands := r.Commands()
	modes := r.Modes()

	cmdIndex := make(map[string]int, len(commands))
	for i, c := range commands {
		cmdIndex[c.ID] = i
	}
	modeIndex := make(map[string]int, len(modes))
	for i, m := range modes {
		modeIndex[m.ID] = i
	}

	for _, p := range packs {
		tag := lang.Tag(p.Language)
		for id, phrases := range p.Commands {
			i, ok := cmdIndex[id]
			if !ok {
				return nil, fmt.Errorf("phrase pack references unknown command %q", id)
			}
			commands[i].Phrases = clonePhrases(commands[i].Phrases)
			commands[i].Phrases[tag] = append(commands[i].Phrases[tag], phrases...)
		}
		for id, phrases := range p.Modes {
			i, ok := modeIndex[id]
			if !ok {
				return nil, fmt.Errorf("phrase pack references unknown mode %q", id)
			}
			modes[i].Phrases = clonePhrases(modes[i].Phrases)
			modes[i].Phrases[tag] = append(modes[i].Phrases[tag], phrases...)
		}
	}
	return New(commands, modes)
}

func clonePhrases(in map[lang.Tag][]string) map[lang.Tag][]string {
	out := make(map[lang.Tag][]string, len(in))
	for tag, phrases := range in {
		out[tag] = append([]string(nil), phrases...)
	}
	return out
}
