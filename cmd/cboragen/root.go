package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gorm.io/gorm"

	"github.com/cboragen/cboragen/pkg/ast"
	"github.com/cboragen/cboragen/pkg/cache"
	"github.com/cboragen/cboragen/pkg/diag"
	"github.com/cboragen/cboragen/pkg/driver"
	"github.com/cboragen/cboragen/pkg/lex"
	"github.com/cboragen/cboragen/pkg/parser"
	"github.com/cboragen/cboragen/pkg/source"
)

type flags struct {
	tokens   bool
	noColor  bool
	noCache  bool
	verbose  bool
	cacheDir string
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	log := logrus.StandardLogger()

	cmd := &cobra.Command{
		Use:     "cboragen <file>",
		Short:   "Parse a cboragen schema file and its transitive imports",
		Version: version.String(),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.verbose {
				log.SetLevel(logrus.DebugLevel)
			}

			return run(cmd, args[0], f, log)
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&f.tokens, "tokens", false, "lex only, printing one line per token")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "suppress ANSI colour in diagnostics output")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "bypass the parse cache for this invocation")
	cmd.Flags().StringVar(&f.cacheDir, "cache-dir", "", "directory holding the on-disk parse cache (default $XDG_CACHE_HOME/cboragen)")
	cmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug-level driver logging")

	return cmd
}

func run(cmd *cobra.Command, path string, f *flags, log *logrus.Logger) error {
	file, err := source.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cboragen: reading %s: %w", path, err)
	}

	if f.tokens {
		printTokens(cmd, file)

		return nil
	}

	result := parser.Parse(file)
	useColor := !f.noColor && term.IsTerminal(int(os.Stderr.Fd()))

	if result.Diagnostics.HasErrors() {
		diag.Render(cmd.ErrOrStderr(), file, result.Diagnostics.Slice(), useColor)

		return fmt.Errorf("cboragen: %s", pluralizeCount(result.Diagnostics.ErrorCount(), "error"))
	}

	var store cache.Store

	if !f.noCache {
		twoTier, err := cache.NewTwoTier(256, openL2(f.cacheDir, log))
		if err != nil {
			log.Warnf("parse cache disabled: %v", err)
		} else {
			store = twoTier
		}
	}

	root := &driver.ParsedFile{File: file, Schema: result.Schema, Diagnostics: result.Diagnostics}

	resolved, err := driver.ResolveImports(context.Background(), root, filepath.Dir(path), driver.Options{Cache: store, Logger: log})
	if err != nil {
		return fmt.Errorf("cboragen: resolving imports: %w", err)
	}

	if n := len(resolved.Diagnostics.Slice()); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "cboragen: %s while resolving imports\n", pluralizeCount(n, "warning"))
	}

	printSummary(cmd, file, resolved)

	return nil
}

// openL2 opens the on-disk L2 cache database for this invocation, so the
// parse cache actually persists across process invocations (§4.7) instead of
// the two-tier store always running L1-only. A failure to open it is not
// fatal: NewTwoTier degrades to an L1-only cache when db is nil.
func openL2(dir string, log *logrus.Logger) *gorm.DB {
	if dir == "" {
		d, err := cache.DefaultDir()
		if err != nil {
			log.Warnf("on-disk parse cache disabled: %v", err)

			return nil
		}

		dir = d
	}

	db, err := cache.OpenL2(filepath.Join(dir, "cache.db"))
	if err != nil {
		log.Warnf("on-disk parse cache disabled: %v", err)

		return nil
	}

	return db
}

func printTokens(cmd *cobra.Command, file *source.File) {
	lx := lex.New(file, &diag.Diagnostics{})

	for _, tok := range lx.Collect() {
		text := ""

		switch tok.Tag {
		case lex.Identifier, lex.TypeIdentifier, lex.IntLiteral, lex.StringLiteral, lex.DocComment:
			text = fmt.Sprintf("  %q", file.Text(tok.Span))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d..%d  %s%s\n", tok.Span.Start(), tok.Span.End(), tok.Tag, text)
	}
}

func printSummary(cmd *cobra.Command, file *source.File, resolved *driver.ResolvedSchema) {
	out := cmd.OutOrStdout()

	docBytes := ast.DocArenaSize(resolved.Root.Schema)
	fmt.Fprintf(out, "%s (%s, %s of doc comments)\n",
		file.Filename(), humanize.Bytes(uint64(len(file.Contents()))), humanize.Bytes(uint64(docBytes)))

	for _, def := range resolved.Root.Schema.Definitions {
		fmt.Fprintf(out, "  %-24s %s\n", def.Name, typeExprKind(def.Type))
	}

	if len(resolved.Imports) > 0 {
		fmt.Fprintf(out, "%s resolved\n", pluralizeCount(len(resolved.Imports), "import"))
	}
}
