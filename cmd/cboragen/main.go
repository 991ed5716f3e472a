// Package main implements the cboragen CLI: parse a schema file (plus its
// transitive imports), print an AST summary, or print its raw token stream.
package main

import (
	"fmt"
	"os"

	"github.com/maloquacious/semver"
)

var version = semver.Version{Major: 0, Minor: 1, Patch: 0, Build: semver.Commit()}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
