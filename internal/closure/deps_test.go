package closure

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scythejs/scythe/internal/emit"
)

func TestScanSymbols(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantProvides []string
		wantRequires []string
	}{
		{
			name:         "goog.module declaration",
			text:         "goog.module('src.app');\n",
			wantProvides: []string{"src.app"},
		},
		{
			name:         "goog.provide declaration",
			text:         "goog.provide('legacy.ns');\n",
			wantProvides: []string{"legacy.ns"},
		},
		{
			name:         "require in an assignment",
			text:         "var dep_1 = goog.require('src.dep');\n",
			wantRequires: []string{"src.dep"},
		},
		{
			name:         "double quoted symbol",
			text:         `goog.require("src.dep");`,
			wantRequires: []string{"src.dep"},
		},
		{
			name: "full generated file",
			text: "goog.module('src.app');\n" +
				"var module = module || { id: 'src/app.ts' };\n" +
				"var dep_1 = goog.require('src.dep');\n" +
				"var util_1 = goog.require('src.util');\n" +
				"exports.a = dep_1.d;\n",
			wantProvides: []string{"src.app"},
			wantRequires: []string{"src.dep", "src.util"},
		},
		{
			name:         "requireType counts as a require",
			text:         "var types = goog.requireType('src.types');\n",
			wantRequires: []string{"src.types"},
		},
		{
			name: "duplicates collapse and sort",
			text: "goog.require('b');\ngoog.require('a');\ngoog.require('b');\n",
			wantRequires: []string{"a", "b"},
		},
		{
			name: "module.get is not a declaration",
			text: "var lazy = goog.module.get('src.lazy');\n",
		},
		{
			name: "unrelated goog text",
			text: "// mentions goog. in prose without a call\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			symbols := ScanSymbols(tt.text)
			assert.Equal(t, tt.wantProvides, symbols.Provides)
			assert.Equal(t, tt.wantRequires, symbols.Requires)
		})
	}
}

func TestDeps(t *testing.T) {
	outDir := filepath.FromSlash("/p/out")
	manifest := emit.NewModulesManifest()
	manifest.AddModule(filepath.FromSlash("/p/out/src/app.js"), "src.app")
	manifest.AddModule(filepath.FromSlash("/p/out/src/dep.js"), "src.dep")

	files := map[string]string{
		filepath.FromSlash("/p/out/src/app.js"): "goog.module('src.app');\nvar dep_1 = goog.require('src.dep');\n",
		filepath.FromSlash("/p/out/src/dep.js"): "goog.module('src.dep');\n",
	}
	load := func(path string) (string, error) {
		text, ok := files[path]
		if !ok {
			return "", fmt.Errorf("no such file %s", path)
		}
		return text, nil
	}

	deps, err := Deps(manifest, load, outDir)

	require.NoError(t, err)
	assert.Equal(t,
		"// Autogenerated dependency file. Do not edit.\n"+
			"goog.addDependency('src/app.js', ['src.app'], ['src.dep'], {'module': 'goog'});\n"+
			"goog.addDependency('src/dep.js', ['src.dep'], [], {'module': 'goog'});\n",
		deps)
}

func TestDepsSkipsOutputsWithoutModules(t *testing.T) {
	manifest := emit.NewModulesManifest()
	manifest.AddModule(filepath.FromSlash("/p/out/plain.js"), "plain")

	deps, err := Deps(manifest, func(string) (string, error) {
		return "console.log('no closure symbols here');\n", nil
	}, filepath.FromSlash("/p/out"))

	require.NoError(t, err)
	assert.Equal(t, "// Autogenerated dependency file. Do not edit.\n", deps)
}

func TestDepsLoadFailure(t *testing.T) {
	manifest := emit.NewModulesManifest()
	manifest.AddModule("out/app.js", "app")

	_, err := Deps(manifest, func(string) (string, error) {
		return "", fmt.Errorf("unreadable")
	}, "out")

	require.Error(t, err)
}
