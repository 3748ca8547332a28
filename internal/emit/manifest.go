package emit

import (
	"sort"

	"github.com/scythejs/scythe/internal/diag"
)

// EmitResult is what one run of the engine produced: the files written, the
// manifest describing their modules, and every diagnostic raised. Outputs
// written before a later file failed stay on disk; EmitSkipped records that
// the run was incomplete.
type EmitResult struct {
	Diagnostics  []diag.Diagnostic
	EmittedFiles []string
	EmitSkipped  bool
	Manifest     *ModulesManifest
}

// ModulesManifest records, per emitted output file, the goog.module it
// provides and the modules it requires. The Closure deps generator consumes
// it.
type ModulesManifest struct {
	fileToModule map[string]string
	referenced   map[string][]string
}

func NewModulesManifest() *ModulesManifest {
	return &ModulesManifest{
		fileToModule: make(map[string]string),
		referenced:   make(map[string][]string),
	}
}

// AddModule records that fileName provides module.
func (m *ModulesManifest) AddModule(fileName, module string) {
	m.fileToModule[fileName] = module
}

// AddReferencedModule records that fileName requires module. Duplicate
// references collapse to one.
func (m *ModulesManifest) AddReferencedModule(fileName, module string) {
	for _, existing := range m.referenced[fileName] {
		if existing == module {
			return
		}
	}
	m.referenced[fileName] = append(m.referenced[fileName], module)
}

// FileNames returns every recorded output file in sorted order.
func (m *ModulesManifest) FileNames() []string {
	names := make([]string, 0, len(m.fileToModule))
	for name := range m.fileToModule {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ModuleName returns the module provided by fileName, or "" when the file is
// not in the manifest.
func (m *ModulesManifest) ModuleName(fileName string) string {
	return m.fileToModule[fileName]
}

// ReferencedModules returns the modules fileName requires, in the order they
// were recorded.
func (m *ModulesManifest) ReferencedModules(fileName string) []string {
	return m.referenced[fileName]
}
