package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-joy/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexShowPos  bool
	lexShowType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Joy file or expression",
	Long: `Tokenize a Joy program and print the resulting tokens, one per line.

Examples:
  joy lex fact.joy
  joy lex -e "3 4 +" --show-type --show-pos`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexShowType, "show-type", false, "show token type names")
}

func lexScript(_ *cobra.Command, args []string) error {
	var input string
	switch {
	case evalExpr != "":
		input = evalExpr
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}

	lx := lexer.New(input, lexer.WithShellEscape(true))
	for {
		tok := lx.NextToken()
		printLexToken(tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	if errs := lx.Errors(); len(errs) > 0 {
		return fmt.Errorf("found %d lexer error(s)", len(errs))
	}
	return nil
}

func printLexToken(tok lexer.Token) {
	var out string
	if lexShowType {
		out = fmt.Sprintf("[%-12s]", tok.Type)
	}
	if tok.Type == lexer.EOF {
		out += " EOF"
	} else {
		out += fmt.Sprintf(" %q", tok.Literal)
	}
	if lexShowPos {
		out += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(out)
}
