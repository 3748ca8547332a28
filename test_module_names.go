package main

import (
	"fmt"

	"github.com/scythejs/scythe/internal/emit"
)

func main() {
	root := "/project/src"

	// Test module name derivation
	tests := []string{
		"/project/src/index.ts",
		"/project/src/components/app.tsx",
		"/project/src/some-dir/file.ts",
		"/project/src/9lives.ts",
		"/elsewhere/outside.ts",
	}

	fmt.Println("Testing module name derivation:")
	for _, test := range tests {
		name := emit.DefaultModuleName(root, test)
		fmt.Printf("File: %-40s -> Module: %s\n", test, name)
	}
	fmt.Println()

	// Test prefix and rename interaction
	namer := emit.ModuleNamer("vendor", map[string]string{"components.app": "thirdparty.app"}, func(context, fileName string) string {
		return emit.DefaultModuleName(root, fileName)
	})

	fmt.Println("Testing prefix and renames:")
	renameTests := []string{
		"/project/src/components/app.tsx", // rename wins, no prefix
		"/project/src/index.ts",           // prefixed
	}
	for _, test := range renameTests {
		fmt.Printf("File: %-40s -> Module: %s\n", test, namer(test, test))
	}
}
