package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		name       string
		diagnostic Diagnostic
		want       string
	}{
		{
			name:       "bare message",
			diagnostic: NewError(CodeNoInputsFound, "no inputs were found in config file"),
			want:       "error TS18003: no inputs were found in config file",
		},
		{
			name:       "file without position",
			diagnostic: NewError(CodeCannotReadFile, "cannot read file").WithFile("tsconfig.json", -1),
			want:       "tsconfig.json: error TS5012: cannot read file",
		},
		{
			name: "file with resolved position",
			diagnostic: Diagnostic{
				File:     "src/app.ts",
				Pos:      42,
				Line:     3,
				Column:   7,
				Category: Error,
				Code:     CodeFailedToParseFile,
				Message:  "failed to parse file 'src/app.ts'",
			},
			want: "src/app.ts(3,7): error TS5014: failed to parse file 'src/app.ts'",
		},
		{
			name:       "warning category",
			diagnostic: NewWarning(CodeFileNotFound, "file 'old.ts' not found"),
			want:       "warning TS6053: file 'old.ts' not found",
		},
		{
			name:       "no code",
			diagnostic: New(Error, 0, "unexpected token").WithFile("src/app.ts", -1),
			want:       "src/app.ts: error: unexpected token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.diagnostic.String())
		})
	}
}

type fixedResolver struct {
	line, column int
}

func (r fixedResolver) Position(path string, offset int) (int, int) {
	return r.line, r.column
}

func TestResolve(t *testing.T) {
	diagnostics := []Diagnostic{
		NewError(CodeFailedToParseFile, "bad syntax").WithFile("tsconfig.json", 17),
		NewError(CodeNoInputsFound, "no inputs"),
		{File: "a.ts", Pos: 5, Line: 9, Column: 9, Category: Error, Code: CodeFailedToParseFile},
	}

	Resolve(diagnostics, fixedResolver{line: 2, column: 4})

	assert.Equal(t, 2, diagnostics[0].Line)
	assert.Equal(t, 4, diagnostics[0].Column)
	assert.Zero(t, diagnostics[1].Line, "diagnostics without a file stay unresolved")
	assert.Equal(t, 9, diagnostics[2].Line, "already resolved positions are kept")
}

func TestFormat(t *testing.T) {
	diagnostics := []Diagnostic{
		NewError(CodeCannotFindProject, "cannot find a tsconfig.json"),
		NewWarning(CodeFileNotFound, "file 'gone.ts' not found"),
	}

	got := Format(diagnostics)

	assert.Equal(t, "error TS5057: cannot find a tsconfig.json\nwarning TS6053: file 'gone.ts' not found", got)
}

func TestHasErrors(t *testing.T) {
	assert.False(t, HasErrors(nil))
	assert.False(t, HasErrors([]Diagnostic{NewWarning(CodeFileNotFound, "w")}))
	assert.True(t, HasErrors([]Diagnostic{
		NewWarning(CodeFileNotFound, "w"),
		NewError(CodeNoInputsFound, "e"),
	}))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "message", Message.String())
	assert.Equal(t, "unknown", Category(42).String())
}
