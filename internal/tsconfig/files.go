package tsconfig

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/scythejs/scythe/internal/diag"
)

var supportedExtensions = []string{".ts", ".tsx"}

// Directories tsc skips unless the config names an exclude list of its own.
var implicitExcludes = []string{"node_modules", "bower_components", "jspm_packages"}

// resolveExplicitFiles handles source files named directly on the command
// line. Each must exist.
func resolveExplicitFiles(files []string, cwd string, errs *[]diag.Diagnostic) []string {
	var names []string
	for _, file := range files {
		resolved := absPath(file, cwd)
		if _, err := os.Stat(resolved); err != nil {
			*errs = append(*errs, diag.NewError(diag.CodeFileNotFound, "File '%s' not found.", file))
			continue
		}
		names = append(names, resolved)
	}
	return dedupeSorted(names)
}

// resolveConfigFiles expands the merged files, include, and exclude
// specifications into the project's input set. Files named in "files" must
// exist and are immune to exclude; include patterns may match nothing.
func resolveConfigFiles(merged mergedConfig, outDir, configPath string, errs *[]diag.Diagnostic) []string {
	configDir := filepath.Dir(configPath)
	var names []string

	if merged.files != nil {
		for _, file := range merged.files.items {
			resolved := absPath(file, merged.files.dir)
			if _, err := os.Stat(resolved); err != nil {
				*errs = append(*errs, diag.NewError(diag.CodeFileNotFound, "File '%s' not found.", resolved))
				continue
			}
			names = append(names, resolved)
		}
	}

	include := merged.include
	if include == nil && merged.files == nil {
		include = &stringList{dir: configDir, items: []string{"**/*"}}
	}
	if include != nil {
		exclude := effectiveExcludes(merged.exclude, configDir, outDir)
		names = append(names, expandPatterns(include, exclude, errs)...)
	}

	names = dedupeSorted(names)
	if len(names) == 0 && merged.files == nil {
		*errs = append(*errs, diag.NewError(diag.CodeNoInputsFound,
			"No inputs were found in config file '%s'. Specified 'include' paths were '%s' and 'exclude' paths were '%s'.",
			configPath, formatSpecs(include), formatSpecs(merged.exclude)))
	}
	return names
}

// effectiveExcludes is the configured exclude list, or the implicit one when
// the config has none, with the output directory always appended.
func effectiveExcludes(exclude *stringList, configDir, outDir string) *stringList {
	list := &stringList{dir: configDir}
	if exclude != nil {
		list.dir = exclude.dir
		list.items = append(list.items, exclude.items...)
	} else {
		list.items = append(list.items, implicitExcludes...)
	}
	if outDir != "" {
		list.items = append(list.items, outDir)
	}
	return list
}

func expandPatterns(include, exclude *stringList, errs *[]diag.Diagnostic) []string {
	var matches []string
	for _, item := range include.items {
		pattern := filepath.ToSlash(absPath(normalizePattern(item), include.dir))
		found, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			*errs = append(*errs, diag.NewError(diag.CodeInvalidPattern,
				"File specification contains an invalid pattern '%s'.", item))
			continue
		}
		for _, match := range found {
			if !hasSupportedExtension(match) {
				continue
			}
			if excluded(match, exclude) {
				continue
			}
			matches = append(matches, match)
		}
	}
	return matches
}

// normalizePattern widens a bare directory name like "src" into a recursive
// pattern, matching how tsc interprets file specifications.
func normalizePattern(item string) string {
	if strings.ContainsAny(item, "*?[{") {
		return item
	}
	if path.Ext(filepath.ToSlash(item)) != "" {
		return item
	}
	return item + "/**/*"
}

func excluded(candidate string, exclude *stringList) bool {
	if exclude == nil {
		return false
	}
	slashed := filepath.ToSlash(candidate)
	for _, item := range exclude.items {
		pattern := filepath.ToSlash(absPath(normalizePattern(item), exclude.dir))
		if ok, err := doublestar.Match(pattern, slashed); err == nil && ok {
			return true
		}
	}
	return false
}

func hasSupportedExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range supportedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func formatSpecs(list *stringList) string {
	if list == nil {
		return "[]"
	}
	data, err := json.Marshal(list.items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func dedupeSorted(names []string) []string {
	if len(names) == 0 {
		return names
	}
	sort.Strings(names)
	deduped := names[:1]
	for _, name := range names[1:] {
		if name != deduped[len(deduped)-1] {
			deduped = append(deduped, name)
		}
	}
	return deduped
}
