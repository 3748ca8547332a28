package main

import (
	"context"
	"fmt"
	"os"

	"github.com/scythejs/scythe/internal/cli"
)

func main() {
	settings, tscArgs := cli.NewSettingsLoader().Load(os.Args[1:])

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scythe: %v\n", err)
		os.Exit(1)
	}

	var diagnostics *cli.DiagnosticSystem
	if settings.Verbose {
		diagnostics = cli.NewVerboseDiagnostics()
	} else {
		diagnostics = cli.NewDiagnosticSystem(cli.DiagnosticInfo)
	}

	runner := cli.NewRunner(settings, diagnostics)
	os.Exit(runner.Run(context.Background(), tscArgs, cwd))
}
