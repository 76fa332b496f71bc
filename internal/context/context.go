// Package context provides process-wide interpreter state for modernish.
// It maintains named variables, named on/off options, the keyed scope save
// stack, error state, and configuration across command executions.
package context

import (
	"github.com/mgree/modernish/pkg/scopetypes"
)

// ShellContext implements the scopetypes.Context interface. It aggregates
// the focused subcontexts so that services depend only on the slice of
// state they need.
type ShellContext struct {
	variableCtx   *variableSubcontext
	optionCtx     *optionSubcontext
	saveCtx       *saveStackSubcontext
	errorStateCtx *errorStateSubcontext
	configCtx     *configurationSubcontext
	testMode      bool
}

// New creates a new ShellContext with empty state.
func New() *ShellContext {
	return &ShellContext{
		variableCtx:   newVariableSubcontext(),
		optionCtx:     newOptionSubcontext(),
		saveCtx:       newSaveStackSubcontext(),
		errorStateCtx: newErrorStateSubcontext(),
		configCtx:     newConfigurationSubcontext(),
	}
}

// NewTestContext creates a ShellContext in test mode, for use in tests.
func NewTestContext() *ShellContext {
	ctx := New()
	ctx.testMode = true
	return ctx
}

// SetTestMode sets the test mode flag.
func (ctx *ShellContext) SetTestMode(testMode bool) {
	ctx.testMode = testMode
}

// IsTestMode returns whether the context is in test mode.
func (ctx *ShellContext) IsTestMode() bool {
	return ctx.testMode
}

// Variable state

// GetVariable retrieves a variable value by name. The second return value
// reports whether the variable is currently set, so that "currently unset"
// can be captured and restored faithfully.
func (ctx *ShellContext) GetVariable(name string) (string, bool) {
	return ctx.variableCtx.GetVariable(name)
}

// SetVariable sets a variable after validating its name.
func (ctx *ShellContext) SetVariable(name string, value string) error {
	return ctx.variableCtx.SetVariable(name, value)
}

// UnsetVariable removes a variable. Unsetting an unset variable is a no-op.
func (ctx *ShellContext) UnsetVariable(name string) {
	ctx.variableCtx.UnsetVariable(name)
}

// GetAllVariables returns a copy of all currently set variables.
func (ctx *ShellContext) GetAllVariables() map[string]string {
	return ctx.variableCtx.GetAllVariables()
}

// InterpolateVariables replaces ${name} placeholders in text with their
// values. Unset variables interpolate to the empty string.
func (ctx *ShellContext) InterpolateVariables(text string) string {
	return ctx.variableCtx.InterpolateVariables(text)
}

// Option state

// OptionState returns the on/off state of a named option and whether the
// option is recognized at all.
func (ctx *ShellContext) OptionState(name string) (on bool, known bool) {
	return ctx.optionCtx.OptionState(name)
}

// SetOption sets a recognized, supported option on or off.
func (ctx *ShellContext) SetOption(name string, on bool) error {
	return ctx.optionCtx.SetOption(name, on)
}

// RegisterOption makes an option known to the context.
func (ctx *ShellContext) RegisterOption(def OptionDef) error {
	return ctx.optionCtx.RegisterOption(def)
}

// LookupOption returns the definition of a recognized option, by long name
// or single-character flag.
func (ctx *ShellContext) LookupOption(nameOrFlag string) (OptionDef, bool) {
	return ctx.optionCtx.LookupOption(nameOrFlag)
}

// Scope save stack

// CaptureScopeFrame captures the current value/state of every item's
// target into a new frame and pushes it on the save stack under key.
// Capturing reads state but never mutates it.
func (ctx *ShellContext) CaptureScopeFrame(key string, frameID string, items []scopetypes.ScopeItem) *ScopeFrame {
	frame := &ScopeFrame{ID: frameID, Key: key, Entries: make([]SavedEntry, 0, len(items))}
	for _, item := range items {
		entry := SavedEntry{Item: item}
		if item.IsVariable() {
			entry.VarValue, entry.VarWasSet = ctx.variableCtx.GetVariable(item.Name)
		} else {
			entry.OptWasOn, _ = ctx.optionCtx.OptionState(item.Name)
		}
		frame.Entries = append(frame.Entries, entry)
	}
	ctx.saveCtx.PushFrame(frame)
	return frame
}

// RestoreScopeFrame restores every saved value/state in a frame, in
// reverse item order.
func (ctx *ShellContext) RestoreScopeFrame(frame *ScopeFrame) error {
	for i := len(frame.Entries) - 1; i >= 0; i-- {
		entry := frame.Entries[i]
		if entry.Item.IsVariable() {
			if entry.VarWasSet {
				if err := ctx.variableCtx.SetVariable(entry.Item.Name, entry.VarValue); err != nil {
					return err
				}
			} else {
				ctx.variableCtx.UnsetVariable(entry.Item.Name)
			}
			continue
		}
		if err := ctx.optionCtx.SetOption(entry.Item.Name, entry.OptWasOn); err != nil {
			return err
		}
	}
	return nil
}

// PopScopeFrame removes and returns the most recent frame pushed under
// key, verifying that it is the frame the caller expects.
func (ctx *ShellContext) PopScopeFrame(key string, frameID string) (*ScopeFrame, error) {
	return ctx.saveCtx.PopFrame(key, frameID)
}

// ScopeFrameDepth returns the number of frames currently stacked under key.
func (ctx *ShellContext) ScopeFrameDepth(key string) int {
	return ctx.saveCtx.FrameDepth(key)
}

// Error state

// ResetErrorState resets the current error state to success and moves the
// current state to last.
func (ctx *ShellContext) ResetErrorState() {
	ctx.errorStateCtx.ResetErrorState()
}

// SetErrorState records the status and error message of the last executed
// command.
func (ctx *ShellContext) SetErrorState(status int, errorMsg string) {
	ctx.errorStateCtx.SetErrorState(status, errorMsg)
}

// GetCurrentErrorState returns the current status and error message.
func (ctx *ShellContext) GetCurrentErrorState() (int, string) {
	return ctx.errorStateCtx.GetCurrentErrorState()
}

// GetLastErrorState returns the previous status and error message.
func (ctx *ShellContext) GetLastErrorState() (int, string) {
	return ctx.errorStateCtx.GetLastErrorState()
}

// Configuration

// LoadConfiguration loads configuration values in priority order:
// defaults, then .env files, then MSH_-prefixed environment variables.
func (ctx *ShellContext) LoadConfiguration() error {
	return ctx.configCtx.Load()
}

// GetConfigValue retrieves a configuration value by key.
func (ctx *ShellContext) GetConfigValue(key string) (string, bool) {
	return ctx.configCtx.GetConfigValue(key)
}
