package shell

import (
	"fmt"

	shellcontext "github.com/mgree/modernish/internal/context"
	"github.com/mgree/modernish/internal/logger"
	"github.com/mgree/modernish/internal/services"
)

// InitializeServices prepares the global context and initializes all
// registered services. Must run before the first Execute.
func InitializeServices(testMode bool) error {
	ctx := shellcontext.GetGlobalContext()
	ctx.SetTestMode(testMode)

	if err := ctx.LoadConfiguration(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := services.GetGlobalRegistry().InitializeAll(); err != nil {
		return err
	}

	logger.Debug("Services initialized", "testMode", testMode)
	return nil
}

// defaultInterpreter is the interpreter behind ProcessInput, created on
// first use.
var defaultInterpreter *Interpreter

// ProcessInput executes one line of user input against the default
// interpreter, reporting errors on the shared logger. It is the entry
// point the REPL hands unrecognized input to.
func ProcessInput(line string) {
	if defaultInterpreter == nil {
		interp, err := NewInterpreter()
		if err != nil {
			logger.Error("Failed to create interpreter", "error", err)
			return
		}
		defaultInterpreter = interp
	}

	if status, err := defaultInterpreter.Execute(line); err != nil {
		logger.Error("Command failed", "status", status, "error", err)
	}
}
