package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loaderFixture struct {
	loader *SettingsLoader
	out    *bytes.Buffer
	errOut *bytes.Buffer
	exits  []int
}

func newLoaderFixture() *loaderFixture {
	f := &loaderFixture{out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	f.loader = &SettingsLoader{
		Output:    f.out,
		ErrOutput: f.errOut,
		Exit:      func(code int) { f.exits = append(f.exits, code) },
	}
	return f
}

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		wantSettings Settings
		wantRest     []string
	}{
		{
			name:         "no arguments",
			args:         nil,
			wantSettings: Settings{ModuleRenames: map[string]string{}},
		},
		{
			name:         "module short flag",
			args:         []string{"-m", "myapp"},
			wantSettings: Settings{Module: "myapp", ModuleRenames: map[string]string{}},
		},
		{
			name:         "module long flag",
			args:         []string{"--module", "myapp"},
			wantSettings: Settings{Module: "myapp", ModuleRenames: map[string]string{}},
		},
		{
			name: "module renames repeat and last wins",
			args: []string{"-mr", "a.b/c.d", "-mr", "x/y", "--module_renames", "x/z"},
			wantSettings: Settings{ModuleRenames: map[string]string{
				"a.b": "c.d",
				"x":   "z",
			}},
		},
		{
			name:         "rename value keeps later slashes",
			args:         []string{"-mr", "a/b/c"},
			wantSettings: Settings{ModuleRenames: map[string]string{"a": "b/c"}},
		},
		{
			name:         "verbose",
			args:         []string{"-v"},
			wantSettings: Settings{Verbose: true, ModuleRenames: map[string]string{}},
		},
		{
			name:         "deps file",
			args:         []string{"--deps_file", "build/deps.js"},
			wantSettings: Settings{DepsFile: "build/deps.js", ModuleRenames: map[string]string{}},
		},
		{
			name:         "ts version with prefix",
			args:         []string{"--ts_version", "v4.9.3"},
			wantSettings: Settings{TSVersion: "v4.9.3", ModuleRenames: map[string]string{}},
		},
		{
			name:         "ts version without prefix",
			args:         []string{"--ts_version", "4.9.3"},
			wantSettings: Settings{TSVersion: "v4.9.3", ModuleRenames: map[string]string{}},
		},
		{
			name:         "clean",
			args:         []string{"--clean"},
			wantSettings: Settings{Clean: true, ModuleRenames: map[string]string{}},
		},
		{
			name:         "compiler arguments after separator",
			args:         []string{"-m", "myapp", "--", "-p", "src", "--outDir", "build"},
			wantSettings: Settings{Module: "myapp", ModuleRenames: map[string]string{}},
			wantRest:     []string{"-p", "src", "--outDir", "build"},
		},
		{
			name:         "own flags after separator pass through",
			args:         []string{"--", "-m", "not-for-us"},
			wantSettings: Settings{ModuleRenames: map[string]string{}},
			wantRest:     []string{"-m", "not-for-us"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLoaderFixture()

			settings, rest := f.loader.Load(tt.args)

			require.Empty(t, f.exits, "no exit expected: %s", f.errOut.String())
			require.NotNil(t, settings)
			assert.Equal(t, tt.wantSettings, *settings)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestLoadSettingsUsageErrors(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantMessage string
	}{
		{"unknown flag", []string{"--bogus"}, "unknown flag --bogus"},
		{"positional argument", []string{"app.ts"}, "compiler arguments go after --"},
		{"module without value", []string{"-m"}, "needs a value"},
		{"rename without value", []string{"-mr"}, "needs a value"},
		{"rename without slash", []string{"-mr", "nomapping"}, "invalid module rename"},
		{"rename with empty from", []string{"-mr", "/to"}, "invalid module rename"},
		{"rename with empty to", []string{"-mr", "from/"}, "invalid module rename"},
		{"bad ts version", []string{"--ts_version", "latest"}, "invalid TypeScript version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLoaderFixture()

			f.loader.Load(tt.args)

			assert.Equal(t, []int{1}, f.exits)
			assert.Contains(t, f.errOut.String(), tt.wantMessage)
			assert.Contains(t, f.errOut.String(), "Usage:")
			assert.Empty(t, f.out.String())
		})
	}
}

func TestLoadSettingsHelp(t *testing.T) {
	for _, flag := range []string{"-h", "--help"} {
		t.Run(flag, func(t *testing.T) {
			f := newLoaderFixture()

			f.loader.Load([]string{flag})

			assert.Equal(t, []int{0}, f.exits)
			assert.Contains(t, f.out.String(), "Usage:")
			assert.Contains(t, f.out.String(), "--module_renames")
			assert.Empty(t, f.errOut.String())
		})
	}
}

func TestLoadSettingsVersion(t *testing.T) {
	f := newLoaderFixture()

	f.loader.Load([]string{"--version"})

	assert.Equal(t, []int{0}, f.exits)
	assert.Contains(t, f.out.String(), "scythe "+Version)
}
