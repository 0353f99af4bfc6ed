// Package cmd wires the interpreter's four external modes (spec.md §6)
// onto a single Cobra root command — grounded on the teacher's
// cmd/dwscript/cmd/root.go, but flattened to a bare command with flags
// rather than a subcommand tree, since the external interface here is
// "pick one of four mutually exclusive modes", not a verb hierarchy.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msdscript-go/msdscript/internal/ast"
	"github.com/msdscript-go/msdscript/internal/cek"
	"github.com/msdscript-go/msdscript/internal/environment"
	"github.com/msdscript-go/msdscript/internal/gc"
	"github.com/msdscript-go/msdscript/internal/interp"
	"github.com/msdscript-go/msdscript/internal/optimize"
	"github.com/msdscript-go/msdscript/internal/parser"
	"github.com/msdscript-go/msdscript/internal/value"
)

// UsageError marks a flag combination that should exit 2 rather than the
// generic non-zero runtime-failure code.
type UsageError struct{ msg string }

func (e *UsageError) Error() string { return e.msg }

var (
	optFlag    bool
	stepFlag   bool
	scriptFlag string
)

var rootCmd = &cobra.Command{
	Use:           "msdscript",
	Short:         "Interpreter for the msdscript expression language",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().BoolVar(&optFlag, "opt", false, "parse stdin, optimize, print the resulting expression")
	rootCmd.Flags().BoolVar(&stepFlag, "step", false, "parse stdin, evaluate via the stepping machine, print value")
	rootCmd.Flags().StringVar(&scriptFlag, "script", "", "parse the named file, evaluate via the stepping machine, print value")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{msg: err.Error()}
	})
}

// Execute runs the root command. The returned error, if any, should be
// interpreted by main: a *UsageError means exit 2, anything else means
// exit 1.
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command, args []string) error {
	modes := 0
	if optFlag {
		modes++
	}
	if stepFlag {
		modes++
	}
	if scriptFlag != "" {
		modes++
	}
	if modes > 1 {
		return &UsageError{msg: "at most one of --opt, --step, --script may be given"}
	}
	if len(args) > 0 {
		return &UsageError{msg: fmt.Sprintf("unrecognized argument %q", args[0])}
	}

	var source string
	switch {
	case scriptFlag != "":
		data, err := os.ReadFile(scriptFlag)
		if err != nil {
			return err
		}
		source = string(data)
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		source = string(data)
	}

	h := gc.NewHeap(gc.DefaultCapacity)
	e, err := parser.Parse(h, source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch {
	case optFlag:
		optimized := optimize.Optimize(h, e)
		fmt.Fprintln(out, ast.String(h, optimized))
		return nil

	case stepFlag || scriptFlag != "":
		m := cek.NewMachine(h)
		v, err := m.InterpByStep(h, e)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, value.ToString(h.Get(v).(value.Value)))
		return nil

	default:
		env := h.Alloc(environment.Empty{})
		v, err := interp.Eval(h, e, env)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, value.ToString(h.Get(v).(value.Value)))
		return nil
	}
}
