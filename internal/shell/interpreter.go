// Package shell provides the minimal host command interpreter the scope
// engine retrofits. It executes one line at a time and supplies the
// bounded-repetition construct that drives the engine's handshake.
package shell

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mgree/modernish/internal/logger"
	"github.com/mgree/modernish/internal/services"
	"github.com/mgree/modernish/internal/statemachine"
	"github.com/mgree/modernish/pkg/scopetypes"
)

// controlFlow marks how a command finished.
type controlFlow int

const (
	ctlNone controlFlow = iota
	// ctlReturn means the command was an early exit from the enclosing
	// block body.
	ctlReturn
)

// Interpreter executes lines against the global services. Positional
// parameters come from the innermost live block's transformed argument
// vector; outside any block there are none.
type Interpreter struct {
	engine          *statemachine.Engine
	variableService *services.VariableService
	optionService   *services.OptionService
	errorService    *services.ErrorManagementService
	out             io.Writer
	argStack        [][]string
	logger          *log.Logger
}

// NewInterpreter creates an interpreter wired against the global services.
func NewInterpreter() (*Interpreter, error) {
	engine, err := statemachine.NewEngine()
	if err != nil {
		return nil, err
	}
	variableService, err := services.GetGlobalVariableService()
	if err != nil {
		return nil, err
	}
	optionService, err := services.GetGlobalOptionService()
	if err != nil {
		return nil, err
	}
	errorService, err := services.GetGlobalErrorManagementService()
	if err != nil {
		return nil, err
	}

	return &Interpreter{
		engine:          engine,
		variableService: variableService,
		optionService:   optionService,
		errorService:    errorService,
		out:             os.Stdout,
		logger:          logger.NewStyledLogger("Shell"),
	}, nil
}

// SetOutput redirects command output, for tests and embedding.
func (i *Interpreter) SetOutput(w io.Writer) {
	i.out = w
}

// Execute runs one input line and returns its exit status.
func (i *Interpreter) Execute(line string) (int, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return 0, nil
	}

	tokens, err := Tokenize(line)
	if err != nil {
		_ = i.errorService.SetErrorStateFromCommandResult(statemachine.StatusDiagnostic, err)
		return statemachine.StatusDiagnostic, err
	}

	_ = i.errorService.ResetErrorState()
	status, _, err := i.executeTokens(tokens)
	_ = i.errorService.SetErrorStateFromCommandResult(status, err)
	return status, err
}

// executeTokens dispatches one command. The token list may contain
// several commands separated by unquoted semicolons.
func (i *Interpreter) executeTokens(tokens []Token) (int, controlFlow, error) {
	commands := splitCommands(tokens)
	status := 0
	for _, cmd := range commands {
		if len(cmd) == 0 {
			continue
		}
		var ctl controlFlow
		var err error
		status, ctl, err = i.executeOne(cmd)
		if err != nil {
			return status, ctl, err
		}
		if ctl == ctlReturn {
			return status, ctl, nil
		}
	}
	return status, ctlNone, nil
}

func (i *Interpreter) executeOne(cmd []Token) (int, controlFlow, error) {
	name := cmd[0].Text
	if cmd[0].Quoted {
		return statemachine.StatusDiagnostic, ctlNone, fmt.Errorf("quoted command name %q", name)
	}

	switch name {
	case "local":
		status, err := i.runLocalBlock(cmd[1:])
		return status, ctlNone, err
	case "set":
		return i.cmdSet(i.expand(cmd[1:]))
	case "unset":
		return i.cmdUnset(i.expand(cmd[1:]))
	case "setopt":
		return i.cmdSetopt(i.expand(cmd[1:]))
	case "echo":
		return i.cmdEcho(i.expand(cmd[1:]))
	case "return":
		return i.cmdReturn(i.expand(cmd[1:]))
	default:
		return statemachine.StatusDiagnostic, ctlNone, fmt.Errorf("unknown command %q", name)
	}
}

// runLocalBlock executes the block construct:
//
//	local ITEM... [-- ARG...] do CMD; CMD; ... done
//
// The body is driven through the handshake's decision function inside the
// interpreter's own repetition loop, so a `return` inside the body unwinds
// through the enclosing scope and still hits the guaranteed restore.
func (i *Interpreter) runLocalBlock(tokens []Token) (int, error) {
	scopeTokens, bodyTokens, err := splitBlock(tokens)
	if err != nil {
		return statemachine.StatusDiagnostic, err
	}
	bodyCommands := splitCommandsNested(bodyTokens)

	act := i.engine.NewActivation()
	bodyStatus := 0
	ran := false

	for {
		sig, err := act.Decide(i.expandTexts(scopeTokens))
		if err != nil {
			i.logger.Error("Scope setup failed", "error", err)
			return statemachine.StatusDiagnostic, err
		}
		if sig == scopetypes.SignalLeave {
			break
		}
		if sig == scopetypes.SignalEnter {
			bodyStatus, err = i.runBody(bodyCommands, act.Args())
			ran = true
			if err != nil {
				// The body failed; the unwind below still runs.
				final, ferr := act.Finish(bodyStatus)
				if ferr != nil {
					return final, ferr
				}
				return final, err
			}
		}
		// SignalSetup: loop again without entering the body.
	}

	if !ran {
		return statemachine.StatusDiagnostic, fmt.Errorf("scope body never ran")
	}
	return act.Finish(bodyStatus)
}

// runBody executes the block body with its local argument vector.
func (i *Interpreter) runBody(commands [][]Token, args []string) (int, error) {
	i.argStack = append(i.argStack, args)
	defer func() {
		i.argStack = i.argStack[:len(i.argStack)-1]
	}()

	status := 0
	for _, cmd := range commands {
		if len(cmd) == 0 {
			continue
		}
		var ctl controlFlow
		var err error
		status, ctl, err = i.executeOne(cmd)
		if err != nil {
			return status, err
		}
		if ctl == ctlReturn {
			break
		}
	}
	return status, nil
}

// Builtin commands

func (i *Interpreter) cmdSet(args []string) (int, controlFlow, error) {
	if len(args) != 1 || !strings.Contains(args[0], "=") {
		return statemachine.StatusDiagnostic, ctlNone, fmt.Errorf("usage: set NAME=VALUE")
	}
	parts := strings.SplitN(args[0], "=", 2)
	if err := i.variableService.Set(parts[0], parts[1]); err != nil {
		return statemachine.StatusDiagnostic, ctlNone, err
	}
	return 0, ctlNone, nil
}

func (i *Interpreter) cmdUnset(args []string) (int, controlFlow, error) {
	if len(args) != 1 {
		return statemachine.StatusDiagnostic, ctlNone, fmt.Errorf("usage: unset NAME")
	}
	if err := i.variableService.Unset(args[0]); err != nil {
		return statemachine.StatusDiagnostic, ctlNone, err
	}
	return 0, ctlNone, nil
}

// cmdSetopt toggles options: setopt -X, setopt +X, setopt -o NAME,
// setopt +o NAME.
func (i *Interpreter) cmdSetopt(args []string) (int, controlFlow, error) {
	if len(args) == 0 {
		return statemachine.StatusDiagnostic, ctlNone, fmt.Errorf("usage: setopt [-+]X | [-+]o NAME")
	}

	var nameOrFlag string
	var on bool
	switch {
	case (args[0] == "-o" || args[0] == "+o") && len(args) == 2:
		nameOrFlag = args[1]
		on = args[0] == "-o"
	case len(args) == 1 && len(args[0]) == 2 && (args[0][0] == '-' || args[0][0] == '+'):
		nameOrFlag = args[0][1:]
		on = args[0][0] == '-'
	default:
		return statemachine.StatusDiagnostic, ctlNone, fmt.Errorf("usage: setopt [-+]X | [-+]o NAME")
	}

	longName, ok := i.optionService.ResolveOption(nameOrFlag)
	if !ok {
		return statemachine.StatusDiagnostic, ctlNone, fmt.Errorf("unknown option %q", nameOrFlag)
	}
	if err := i.optionService.SetOption(longName, on); err != nil {
		return statemachine.StatusDiagnostic, ctlNone, err
	}
	return 0, ctlNone, nil
}

func (i *Interpreter) cmdEcho(args []string) (int, controlFlow, error) {
	if _, err := fmt.Fprintln(i.out, strings.Join(args, " ")); err != nil {
		return statemachine.StatusDiagnostic, ctlNone, err
	}
	return 0, ctlNone, nil
}

func (i *Interpreter) cmdReturn(args []string) (int, controlFlow, error) {
	status := 0
	if len(args) > 1 {
		return statemachine.StatusDiagnostic, ctlNone, fmt.Errorf("usage: return [N]")
	}
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return statemachine.StatusDiagnostic, ctlNone, fmt.Errorf("return: %q is not a number", args[0])
		}
		status = n
	}
	return status, ctlReturn, nil
}

// Expansion

// expand expands positional parameters and ${name} references in each
// token and returns the resulting strings.
func (i *Interpreter) expand(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, i.expandText(t.Text))
	}
	return out
}

// expandTexts is expand for a pre-extracted string slice.
func (i *Interpreter) expandTexts(tokens []Token) []string {
	return i.expand(tokens)
}

func (i *Interpreter) expandText(text string) string {
	args := i.currentArgs()

	// Positional forms first, then named variables.
	text = strings.ReplaceAll(text, "$#", strconv.Itoa(len(args)))
	text = strings.ReplaceAll(text, "$@", strings.Join(args, " "))
	for n := len(args); n >= 1; n-- {
		text = strings.ReplaceAll(text, "$"+strconv.Itoa(n), args[n-1])
	}

	expanded, err := i.variableService.InterpolateString(text)
	if err != nil {
		return text
	}
	return expanded
}

func (i *Interpreter) currentArgs() []string {
	if len(i.argStack) == 0 {
		return nil
	}
	return i.argStack[len(i.argStack)-1]
}

// Block parsing helpers

// splitBlock separates `ITEM... do BODY done` into the scope tokens and
// the body tokens, respecting nested do/done pairs inside the body.
func splitBlock(tokens []Token) ([]Token, []Token, error) {
	doIdx := -1
	for idx, t := range tokens {
		if t.IsKeyword("do") {
			doIdx = idx
			break
		}
	}
	if doIdx == -1 {
		return nil, nil, fmt.Errorf("local: missing 'do'")
	}

	depth := 1
	for idx := doIdx + 1; idx < len(tokens); idx++ {
		switch {
		case tokens[idx].IsKeyword("do"):
			depth++
		case tokens[idx].IsKeyword("done"):
			depth--
			if depth == 0 {
				if idx != len(tokens)-1 {
					return nil, nil, fmt.Errorf("local: trailing tokens after 'done'")
				}
				return tokens[:doIdx], tokens[doIdx+1 : idx], nil
			}
		}
	}
	return nil, nil, fmt.Errorf("local: missing 'done'")
}

// splitCommands splits a token list into commands at unquoted semicolons.
func splitCommands(tokens []Token) [][]Token {
	var commands [][]Token
	var current []Token
	for _, t := range tokens {
		if t.IsKeyword(";") {
			commands = append(commands, current)
			current = nil
			continue
		}
		current = append(current, t)
	}
	commands = append(commands, current)
	return commands
}

// splitCommandsNested splits a block body into commands at unquoted
// semicolons, but only outside nested do/done pairs, so an inner block
// stays one command.
func splitCommandsNested(tokens []Token) [][]Token {
	var commands [][]Token
	var current []Token
	depth := 0
	for _, t := range tokens {
		switch {
		case t.IsKeyword("do"):
			depth++
		case t.IsKeyword("done"):
			depth--
		case t.IsKeyword(";") && depth == 0:
			commands = append(commands, current)
			current = nil
			continue
		}
		current = append(current, t)
	}
	commands = append(commands, current)
	return commands
}
