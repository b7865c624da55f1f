package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/cwbudde/go-cel/internal/bindings"
	"github.com/cwbudde/go-cel/internal/errors"
	"github.com/cwbudde/go-cel/internal/interp"
	"github.com/cwbudde/go-cel/internal/parser"
	"github.com/cwbudde/go-cel/internal/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var (
	bindingsFile   string
	containerName  string
	exhaustive     bool
	optimize       bool
	trackState     bool
	showCost       bool
	interruptAfter time.Duration
)

var log = commonlog.GetLogger("cel")

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a CEL expression",
	Long: `Plan and evaluate a CEL expression against optional variable bindings.

Examples:
  # Evaluate a standalone expression
  cel eval "1 + 2 * 3"

  # Evaluate against bindings from a JSON or YAML file
  cel eval --bindings request.json "headers.ip in ['10.0.1.4', '10.0.1.5']"

  # Evaluate both branches of short-circuit operators
  cel eval --exhaustive --track-state "false && unknownVar"

  # Constant-fold at plan time and show the cost estimate
  cel eval --optimize --cost "timestamp('1986-04-26T01:23:40Z')"`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVarP(&bindingsFile, "bindings", "b", "", "JSON or YAML file with variable bindings")
	evalCmd.Flags().StringVar(&containerName, "container", "", "namespace container for identifier resolution")
	evalCmd.Flags().BoolVar(&exhaustive, "exhaustive", false, "evaluate both branches of short-circuit operators")
	evalCmd.Flags().BoolVar(&optimize, "optimize", false, "constant-fold the plan before evaluation")
	evalCmd.Flags().BoolVar(&trackState, "track-state", false, "print intermediate values by node id")
	evalCmd.Flags().BoolVar(&showCost, "cost", false, "print the plan's cost estimate")
	evalCmd.Flags().DurationVar(&interruptAfter, "interrupt-after", 0, "interrupt comprehensions after the given duration")
}

func runEval(_ *cobra.Command, args []string) error {
	source := args[0]

	parsed, parseErrs := parser.Parse(source)
	if len(parseErrs) > 0 {
		fmt.Fprintln(os.Stderr, errors.FormatErrors(parseErrs, true))
		return fmt.Errorf("parsing failed with %d error(s)", len(parseErrs))
	}
	log.Debugf("parsed %q", source)

	vars, err := buildActivation()
	if err != nil {
		return err
	}

	registry := types.NewRegistry()
	interpreter, err := interp.NewStandardInterpreter(interp.NewContainer(containerName), registry, registry)
	if err != nil {
		return fmt.Errorf("failed to initialize interpreter: %w", err)
	}

	state := interp.NewEvalState()
	var decorators []interp.InterpretableDecorator
	if optimize {
		decorators = append(decorators, interp.Optimize())
	}
	if exhaustive {
		decorators = append(decorators, interp.ExhaustiveEval(state))
	} else if trackState {
		decorators = append(decorators, interp.TrackState(state))
	}

	plan, err := interpreter.NewInterpretable(parsed, decorators...)
	if err != nil {
		color.Red("plan error: %s", err)
		return fmt.Errorf("planning failed")
	}
	if showCost {
		cost := interp.EstimateCost(plan)
		fmt.Printf("cost: [%d, %d]\n", cost.Min, cost.Max)
	}

	if interruptAfter > 0 {
		deadline := time.Now().Add(interruptAfter)
		vars = interp.NewInterruptibleActivation(vars, func() bool {
			return time.Now().After(deadline)
		})
	}

	start := time.Now()
	result := plan.Eval(vars)
	log.Debugf("evaluated in %s", time.Since(start))

	printResult(result)
	if trackState || exhaustive {
		printState(state)
	}
	if types.IsError(result) {
		return fmt.Errorf("evaluation failed")
	}
	return nil
}

func buildActivation() (interp.Activation, error) {
	if bindingsFile == "" {
		return interp.EmptyActivation(), nil
	}
	input, err := bindings.Load(bindingsFile)
	if err != nil {
		return nil, err
	}
	log.Infof("loaded %d binding(s) from %s", len(input.Variables), bindingsFile)
	if len(input.UnknownPatterns) == 0 {
		return interp.NewActivation(input.Variables)
	}
	patterns := make([]*interp.AttributePattern, 0, len(input.UnknownPatterns))
	for _, s := range input.UnknownPatterns {
		p, err := interp.ParseAttributePattern(s)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return interp.NewPartialActivation(input.Variables, patterns...)
}

func printResult(result types.Value) {
	switch {
	case types.IsError(result):
		color.Red("error: %v", result)
	case types.IsUnknown(result):
		color.Yellow("unknown: %v", result)
	default:
		fmt.Printf("%v\n", result)
	}
}

func printState(state interp.EvalState) {
	ids := state.IDs()
	if len(ids) == 0 {
		return
	}
	fmt.Println("state:")
	for _, id := range sortedIDs(ids) {
		if v, found := state.Value(id); found {
			fmt.Printf("  #%d = %v\n", id, v)
		}
	}
}

func sortedIDs(ids []int64) []int64 {
	out := make([]int64, len(ids))
	copy(out, ids)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
