package level

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed stages/*
var builtinStages embed.FS

// Catalog is the ordered list of stages
type Catalog struct {
	stages []Script
}

// NewCatalog returns a catalog of the given scripts in order
func NewCatalog(scripts ...Script) *Catalog {
	return &Catalog{stages: append([]Script(nil), scripts...)}
}

// Builtin returns the tutorial followed by the embedded stage files
func Builtin() (*Catalog, error) {
	c := &Catalog{stages: []Script{Tutorial()}}
	if err := c.loadFS(builtinStages, "stages"); err != nil {
		return nil, fmt.Errorf("builtin stages: %w", err)
	}
	return c, nil
}

// LoadDir appends .yaml, .yml and .lua stage files from dir in name order, a missing dir is skipped
func (c *Catalog) LoadDir(dir string) error {
	if dir == "" {
		return nil
	}
	err := c.loadFS(os.DirFS(dir), ".")
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (c *Catalog) loadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" && ext != ".lua" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read stage %s: %w", name, err)
		}

		var s Script
		if ext == ".lua" {
			s, err = LoadLua(strings.TrimSuffix(name, filepath.Ext(name)), string(data))
		} else {
			s, err = LoadYAML(data)
		}
		if err != nil {
			return fmt.Errorf("stage %s: %w", name, err)
		}
		c.stages = append(c.stages, s)
	}
	return nil
}

// Stage returns the script for stage n, stages past the end repeat the last one
func (c *Catalog) Stage(n uint32) Script {
	if len(c.stages) == 0 {
		return Tutorial()
	}
	if int(n) >= len(c.stages) {
		return c.stages[len(c.stages)-1]
	}
	return c.stages[n]
}

// Len returns the number of stages
func (c *Catalog) Len() int { return len(c.stages) }

// Names lists stage names in order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.Name
	}
	return names
}
