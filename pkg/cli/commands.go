package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/goxlang/gox/internal/config"
	"github.com/goxlang/gox/internal/ircode"
)

// handleCheck runs the compile pipeline without executing, so editors and
// scripts can surface every diagnostic at once.
func handleCheck() bool {
	if len(os.Args) < 2 || os.Args[1] != "check" {
		return false
	}
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s check <file>\n", os.Args[0])
		os.Exit(2)
	}

	path := os.Args[2]
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gox: %v\n", err)
		os.Exit(2)
	}

	_, errs := compileSource(string(source), path)
	if len(errs) > 0 {
		reportDiagnostics(os.Stderr, errs)
		os.Exit(1)
	}
	return true
}

// handleBuild compiles a source file into a bytecode file.
func handleBuild() bool {
	if len(os.Args) < 2 || os.Args[1] != "build" {
		return false
	}
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s build <file> [-o <output>]\n", os.Args[0])
		os.Exit(2)
	}

	sourcePath := os.Args[2]
	outputPath := strings.TrimSuffix(sourcePath, config.SourceFileExt) + config.BytecodeFileExt
	for i := 3; i < len(os.Args); i++ {
		if os.Args[i] == "-o" && i+1 < len(os.Args) {
			outputPath = os.Args[i+1]
			i++
		}
	}

	cfg, err := config.Load(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gox: %v\n", err)
		os.Exit(2)
	}

	program, ok := compileFile(sourcePath, cfg)
	if !ok {
		os.Exit(1)
	}

	data, err := program.Serialize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gox: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "gox: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s (build %s)\n", outputPath, program.BuildID)
	return true
}

// handleRunCompiled executes a previously built bytecode file.
func handleRunCompiled() bool {
	if len(os.Args) < 2 || (os.Args[1] != "-r" && os.Args[1] != "--run") {
		return false
	}
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s -r <file%s>\n", os.Args[0], config.BytecodeFileExt)
		os.Exit(2)
	}

	path := os.Args[2]
	program, err := loadCompiled(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gox: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gox: %v\n", err)
		os.Exit(2)
	}

	os.Exit(execute(program, cfg))
	return true
}

// handleDisasm prints the instruction listing of a source or bytecode file.
func handleDisasm() bool {
	if len(os.Args) < 2 || os.Args[1] != "disasm" {
		return false
	}
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s disasm <file>\n", os.Args[0])
		os.Exit(2)
	}

	path := os.Args[2]
	var program *ircode.Program

	if isSourceFile(path) {
		cfg, err := config.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "gox: %v\n", err)
			os.Exit(2)
		}
		compiled, ok := compileFile(path, cfg)
		if !ok {
			os.Exit(1)
		}
		program = compiled
	} else {
		compiled, err := loadCompiled(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "gox: %v\n", err)
			os.Exit(2)
		}
		program = compiled
	}

	fmt.Print(ircode.Disassemble(program))
	return true
}
