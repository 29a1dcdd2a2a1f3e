package cli

import (
	"fmt"
	"os"

	"github.com/goxlang/gox/internal/cache"
	"github.com/goxlang/gox/internal/checker"
	"github.com/goxlang/gox/internal/config"
	"github.com/goxlang/gox/internal/diagnostics"
	"github.com/goxlang/gox/internal/ircode"
	"github.com/goxlang/gox/internal/lexer"
	"github.com/goxlang/gox/internal/parser"
	"github.com/goxlang/gox/internal/pipeline"
)

// compilePipeline assembles the full source-to-IR pipeline.
func compilePipeline() *pipeline.Pipeline {
	return pipeline.New(
		lexer.NewLexerProcessor(),
		parser.NewParserProcessor(),
		checker.NewCheckerProcessor(),
		ircode.NewCodegenProcessor(),
	)
}

// compileFile compiles one source file, consulting the compile cache when
// the configuration enables it. Diagnostics go to stderr; the second
// return is false when compilation failed.
func compileFile(path string, cfg *config.Config) (*ircode.Program, bool) {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gox: %v\n", err)
		return nil, false
	}

	var store *cache.Cache
	if cfg.Cache.Enabled {
		store, err = cache.Open(cfg.Cache.Path)
		if err != nil {
			// A broken cache never blocks compilation.
			fmt.Fprintf(os.Stderr, "gox: warning: %v\n", err)
		} else {
			defer store.Close()
			if program, hit, err := store.Get(source); err == nil && hit {
				return program, true
			}
		}
	}

	program, errs := compileSource(string(source), path)
	if len(errs) > 0 {
		reportDiagnostics(os.Stderr, errs)
		return nil, false
	}

	if store != nil {
		if err := store.Put(source, program); err != nil {
			fmt.Fprintf(os.Stderr, "gox: warning: %v\n", err)
		}
	}
	return program, true
}

// compileSource runs the pipeline over source text already in memory.
func compileSource(source, path string) (*ircode.Program, []*diagnostics.DiagnosticError) {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = path
	ctx = compilePipeline().Run(ctx)
	if ctx.HasErrors() {
		return nil, ctx.Errors
	}
	return ctx.IR.(*ircode.Program), nil
}

// loadCompiled reads a serialized program from disk.
func loadCompiled(path string) (*ircode.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ircode.Deserialize(data)
}
