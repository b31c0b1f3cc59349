// Package stdlib bundles the kernel library packages every implicit
// supertype needs somewhere real to resolve to: Parts::Part,
// Items::Item, Actions::Action, and the rest of the table in
// pkg/hir/implicit.go. Real KerML/SysML distributions ship this as a
// large tree of .sysml/.kerml files (original_source's own bundled
// sysml.library/kerml.library trees are referenced throughout its
// symbols.rs); this is a minimal but structurally real stand-in:
// go:embed-ed so the engine never has to locate it on disk, the way the
// teacher's catalog ships as embedded JSON rather than a runtime asset.
package stdlib

import (
	"embed"
	"sort"

	"sysmlkit/pkg/token"
)

//go:embed library/*.sysml
var libraryFS embed.FS

// Source is one bundled kernel package's raw text, ready to hand to
// Database.InsertFile the same way any user file is.
type Source struct {
	Path    string // relative path under library/, e.g. "Parts.sysml"
	Text    string
	Dialect token.Dialect
}

var sources []Source

func init() {
	entries, err := libraryFS.ReadDir("library")
	if err != nil {
		panic("stdlib: failed to read embedded library: " + err.Error())
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := libraryFS.ReadFile("library/" + e.Name())
		if err != nil {
			panic("stdlib: failed to read embedded file " + e.Name() + ": " + err.Error())
		}
		sources = append(sources, Source{Path: e.Name(), Text: string(data), Dialect: token.DialectSysML})
	}
}

// Sources returns every bundled kernel package, in a stable sorted order.
func Sources() []Source {
	return append([]Source(nil), sources...)
}
