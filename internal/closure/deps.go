// Package closure extracts goog symbol declarations from generated
// JavaScript and renders Closure Library dependency files from them.
package closure

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/scythejs/scythe/internal/emit"
)

// quoted captures a string token with its surrounding quotes stripped.
// strconv-style unquoting does not apply because goog calls use single
// quotes.
type quoted string

func (q *quoted) Capture(values []string) error {
	raw := values[0]
	*q = quoted(raw[1 : len(raw)-1])
	return nil
}

// googCall is one goog.<fn>('symbol') call.
type googCall struct {
	Fn     string `parser:"'goog' '.' @Ident"`
	Symbol quoted `parser:"'(' @String ')'"`
}

var googLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`},
	{Name: "String", Pattern: `'[^']*'|"[^"]*"`},
	{Name: "Punct", Pattern: `[().;,]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var googParser = participle.MustBuild[googCall](
	participle.Lexer(googLexer),
	participle.Elide("Whitespace"),
)

// FileSymbols is what one generated file declares: the modules it provides
// and the modules it requires, sorted and deduplicated.
type FileSymbols struct {
	Provides []string
	Requires []string
}

// ScanSymbols finds every goog.module, goog.provide, goog.require, and
// goog.requireType call in the text. Calls may appear anywhere in a line,
// including on the right side of an assignment.
func ScanSymbols(text string) FileSymbols {
	var symbols FileSymbols
	rest := text
	for {
		idx := strings.Index(rest, "goog.")
		if idx < 0 {
			break
		}
		rest = rest[idx:]
		if call, ok := parseCall(rest); ok {
			switch call.Fn {
			case "provide", "module":
				symbols.Provides = append(symbols.Provides, string(call.Symbol))
			case "require", "requireType":
				symbols.Requires = append(symbols.Requires, string(call.Symbol))
			}
		}
		rest = rest[len("goog."):]
	}
	symbols.Provides = sortedUnique(symbols.Provides)
	symbols.Requires = sortedUnique(symbols.Requires)
	return symbols
}

// parseCall parses the call at the start of text, bounded at the first
// closing parenthesis so surrounding code never reaches the lexer.
func parseCall(text string) (*googCall, bool) {
	end := strings.IndexByte(text, ')')
	if end < 0 {
		return nil, false
	}
	call, err := googParser.ParseString("", text[:end+1])
	if err != nil {
		return nil, false
	}
	return call, true
}

// LoadFunc returns the text of an emitted output file.
type LoadFunc func(path string) (string, error)

// Deps renders a Closure deps file covering every output in the manifest.
// Paths are written relative to depsRoot, the directory the deps file will
// live in. Outputs that declare no module are left out; the Closure loader
// resolves entries by what they provide.
func Deps(manifest *emit.ModulesManifest, load LoadFunc, depsRoot string) (string, error) {
	var b strings.Builder
	b.WriteString("// Autogenerated dependency file. Do not edit.\n")
	for _, fileName := range manifest.FileNames() {
		text, err := load(fileName)
		if err != nil {
			return "", err
		}
		symbols := ScanSymbols(text)
		if len(symbols.Provides) == 0 {
			continue
		}
		rel := fileName
		if r, relErr := filepath.Rel(depsRoot, fileName); relErr == nil {
			rel = r
		}
		fmt.Fprintf(&b, "goog.addDependency('%s', [%s], [%s], {'module': 'goog'});\n",
			filepath.ToSlash(rel), quoteList(symbols.Provides), quoteList(symbols.Requires))
	}
	return b.String(), nil
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	return strings.Join(quoted, ", ")
}

func sortedUnique(items []string) []string {
	if len(items) == 0 {
		return items
	}
	sort.Strings(items)
	unique := items[:1]
	for _, item := range items[1:] {
		if item != unique[len(unique)-1] {
			unique = append(unique, item)
		}
	}
	return unique
}
