// Package internal provides the rule engine behind eslex.
//
// A rule is a token pattern with a name, a severity and a message. The
// Engine compiles every configured rule once and runs all of them over each
// file it is given, reporting one Match per pattern occurrence. Matching is
// delegated to the matcher package, so whitespace and comments in the
// searched file never affect a result.
//
// Key components:
//
// Engine: compiles rules, filters files by extension and ignored paths, and
// runs the rules concurrently over one file. Matches silenced by an
// eslex-ignore comment are dropped (see the nolint package).
//
// Cache: keeps the matches of files that have not changed since the last
// run, on disk, keyed by file hash and modification time.
//
// Watch: rescans files as they are written.
//
// SourceCode: the lines of a file, used to render snippets.
//
// Usage:
//
//	engine, err := internal.NewEngine(map[string]types.ConfigRule{
//	    "no-eval": {Pattern: "eval(", Severity: types.SeverityError},
//	})
//	if err != nil {
//	    // handle error
//	}
//
//	matches, err := engine.Run("src/app.js")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, m := range matches {
//	    fmt.Printf("%s: %s at %s\n", m.Rule, m.Message, m.Start)
//	}
package internal
