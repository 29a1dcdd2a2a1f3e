// Package cli implements the gox command line tool: running source files,
// checking them without executing, building and running compiled programs,
// and disassembling bytecode.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/goxlang/gox/internal/config"
	"github.com/goxlang/gox/internal/ircode"
	"github.com/goxlang/gox/internal/vm"
)

func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Run is the CLI entry point.
func Run() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if len(os.Args) == 2 {
		switch os.Args[1] {
		case "-v", "-version", "--version":
			fmt.Println("gox " + config.Version)
			return
		}
	}

	if handleHelp() {
		return
	}
	if handleCheck() {
		return
	}
	if handleBuild() {
		return
	}
	if handleRunCompiled() {
		return
	}
	if handleDisasm() {
		return
	}

	// Default: run a source file. "gox run file" and "gox file" are the
	// same command.
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "run" {
		args = args[1:]
	}
	if len(args) < 1 {
		printUsage()
		os.Exit(2)
	}
	runSourceFile(args[0])
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  gox [run] <file"+config.SourceFileExt+">    compile and run a program")
	fmt.Fprintln(os.Stderr, "  gox check <file>          report compile errors without running")
	fmt.Fprintln(os.Stderr, "  gox build <file> [-o out] compile to a "+config.BytecodeFileExt+" file")
	fmt.Fprintln(os.Stderr, "  gox -r <file"+config.BytecodeFileExt+">      run a compiled program")
	fmt.Fprintln(os.Stderr, "  gox disasm <file>         show the compiled instruction listing")
	fmt.Fprintln(os.Stderr, "  gox -version              show the toolchain version")
}

func handleHelp() bool {
	if len(os.Args) < 2 {
		return false
	}
	switch os.Args[1] {
	case "help", "-help", "--help", "-h":
		printUsage()
		return true
	}
	return false
}

// runSourceFile compiles and executes a program, exiting with the
// program's exit value.
func runSourceFile(path string) {
	if !isSourceFile(path) {
		fmt.Fprintf(os.Stderr, "gox: %s is not a %s file\n", path, config.SourceFileExt)
		os.Exit(2)
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gox: %v\n", err)
		os.Exit(2)
	}

	program, ok := compileFile(path, cfg)
	if !ok {
		os.Exit(1)
	}

	exitCode := execute(program, cfg)
	os.Exit(exitCode)
}

// execute runs a compiled program on a fresh machine and maps the result
// to a process exit code.
func execute(program *ircode.Program, cfg *config.Config) int {
	opts := []vm.Option{vm.WithInitialMemory(cfg.Memory.InitialCells)}
	if cfg.Trace {
		opts = append(opts, vm.WithTrace(os.Stderr))
	}

	machine := vm.New(program, opts...)
	result, err := machine.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gox: %v\n", err)
		return 70
	}
	return int(uint8(result))
}
