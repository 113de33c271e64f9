package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/go-joy/internal/ast"
	"github.com/cwbudde/go-joy/internal/config"
	"github.com/cwbudde/go-joy/internal/errors"
	"github.com/cwbudde/go-joy/internal/interp"
	"github.com/cwbudde/go-joy/internal/lexer"
	"github.com/cwbudde/go-joy/internal/parser"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var (
	evalExpr    string
	dumpTokens  bool
	dumpAST     bool
	allowShell  bool
	undefErrSet bool
	undefErr    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Joy file, an inline expression, or start the REPL",
	Long: `Execute a Joy program from a file or an inline expression, or, with
no arguments, start an interactive REPL.

Examples:
  # Run a script file
  joy run fact.joy

  # Evaluate an inline expression
  joy run -e "3 4 + ."

  # Start the REPL
  joy run

  # Dump the token stream instead of executing
  joy run --dump-tokens fact.joy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpTokens, "dump-tokens", false, "dump the token stream as JSON instead of executing")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed term sequence as JSON instead of executing")
	runCmd.Flags().BoolVar(&allowShell, "allow-shell", false, "enable $-prefixed shell-escape lines")
	runCmd.Flags().Func("undef-error", "fail on an unresolved symbol instead of pushing it as data (default true)", func(v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		undefErrSet, undefErr = true, b
		return nil
	})
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}

func runScript(_ *cobra.Command, args []string) error {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		return fmt.Errorf("loading config: %w", cfgErr)
	}
	resolved := cfg.Resolve()
	var undef, shell *bool
	if undefErrSet {
		undef = &undefErr
	}
	if allowShell {
		v := true
		shell = &v
	}
	resolved = resolved.Override(undef, shell)

	var input, filename string
	switch {
	case evalExpr != "":
		input, filename = evalExpr, "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	default:
		return runREPL(resolved)
	}

	if dumpTokens {
		return dumpTokenStream(input)
	}
	if dumpAST {
		return dumpTermStream(input, filename)
	}

	ev := interp.New(os.Stdout,
		interp.WithUndefError(resolved.UndefError),
		interp.WithShellEscape(resolved.AllowShell),
		interp.WithIncludePaths(resolved.Include),
		interp.WithArgv(args),
		interp.WithInput(os.Stdin),
	)
	if err := ev.Run(input, filename); err != nil {
		return reportRunError(err)
	}
	return nil
}

// reportRunError formats an evaluator error the way the driver's
// contract in spec.md §7 requires, and translates an Exit into a
// process exit code instead of a reported error.
func reportRunError(err error) error {
	if exit, ok := err.(*errors.Exit); ok {
		os.Exit(exit.Code)
	}
	if positioned, ok := err.(errors.Positioned); ok {
		fmt.Fprint(os.Stderr, errors.FormatErrors([]errors.Positioned{positioned}, true))
		fmt.Fprintln(os.Stderr)
		os.Exit(1)
	}
	return err
}

func runREPL(resolved config.Resolved) error {
	ev := interp.New(os.Stdout,
		interp.WithUndefError(resolved.UndefError),
		interp.WithShellEscape(resolved.AllowShell),
		interp.WithIncludePaths(resolved.Include),
		interp.WithInput(os.Stdin),
	)
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprint(os.Stdout, "joy> ")
	for scanner.Scan() {
		line := scanner.Text()
		if err := ev.Run(line, "<repl>"); err != nil {
			if exit, ok := err.(*errors.Exit); ok {
				os.Exit(exit.Code)
			}
			if positioned, ok := err.(errors.Positioned); ok {
				fmt.Fprintln(os.Stderr, errors.FormatErrors([]errors.Positioned{positioned}, true))
			} else {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
		fmt.Fprint(os.Stdout, "joy> ")
	}
	fmt.Fprintln(os.Stdout)
	return scanner.Err()
}

func dumpTokenStream(input string) error {
	lx := lexer.New(input, lexer.WithShellEscape(allowShell))
	type tokenJSON struct {
		Type    string `json:"type"`
		Literal string `json:"literal"`
		Line    int    `json:"line"`
		Column  int    `json:"column"`
	}
	var toks []tokenJSON
	for {
		tok := lx.NextToken()
		toks = append(toks, tokenJSON{
			Type:    tok.Type.String(),
			Literal: tok.Literal,
			Line:    tok.Pos.Line,
			Column:  tok.Pos.Column,
		})
		if tok.Type == lexer.EOF {
			break
		}
	}
	return printJSON(toks)
}

func dumpTermStream(input, filename string) error {
	lx := lexer.New(input, lexer.WithShellEscape(allowShell))
	p := parser.New(lx, input, filename)
	terms, err := p.Parse()
	if err != nil {
		return reportRunError(err)
	}
	docs := make([]any, len(terms))
	for i, t := range terms {
		docs[i] = termToJSON(t)
	}
	return printJSON(docs)
}

func termToJSON(t ast.Term) map[string]any {
	if t.IsDefinition {
		body := make([]any, len(t.Def.Body))
		for i, bt := range t.Def.Body {
			body[i] = termToJSON(bt)
		}
		return map[string]any{"kind": "definition", "name": t.Def.Name, "body": body}
	}
	if t.IsShell {
		return map[string]any{"kind": "shell", "cmd": t.ShellCmd}
	}
	return map[string]any{"kind": "value", "value": t.Val.String()}
}

// printJSON marshals doc, validates it with gjson (the same library
// go-snaps' own serialization path pulls in transitively), and writes
// the re-parsed, indented form to stdout.
func printJSON(doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if !gjson.Valid(string(data)) {
		return fmt.Errorf("internal error: produced invalid JSON")
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return err
	}
	fmt.Println(pretty.String())
	return nil
}
