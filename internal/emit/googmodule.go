package emit

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/scythejs/scythe/internal/diag"
)

const suppressionsHeader = `/**
 * @fileoverview generated output, do not edit
 * @suppress {checkTypes,extraRequire,missingOverride,missingRequire,missingReturn,uselessCode}
 */
`

var requireCall = regexp.MustCompile(`require\((['"])([^'"]+)['"]\)`)

// toGoogModule wraps the compiler's CommonJS output in a goog.module
// declaration and rewrites relative requires into goog.require calls using
// the host's module naming. Bare specifiers, which name packages rather than
// project files, pass through untouched. Each rewritten reference is
// reported through record.
func toGoogModule(js, fileName, moduleName string, host *Host, record func(ref string)) string {
	var b strings.Builder
	fmt.Fprintf(&b, "goog.module('%s');\n", moduleName)
	fmt.Fprintf(&b, "var module = module || { id: '%s' };\n", host.FileNameToModuleID(fileName))

	body := requireCall.ReplaceAllStringFunc(js, func(call string) string {
		m := requireCall.FindStringSubmatch(call)
		importPath := m[2]
		if !strings.HasPrefix(importPath, ".") {
			if host.LogWarning != nil {
				host.LogWarning(diag.New(diag.Warning, 0,
					"leaving require('%s') untouched, it does not name a project file", importPath).WithFile(fileName, -1))
			}
			return call
		}
		resolved := filepath.Join(filepath.Dir(fileName), filepath.FromSlash(importPath))
		ref := host.ModuleName(fileName, resolved)
		record(ref)
		return fmt.Sprintf("goog.require('%s')", ref)
	})
	b.WriteString(body)
	return b.String()
}
