package context

import (
	"fmt"
	"sync"
)

// OptionDef describes one named on/off option the host recognizes.
// Recognized does not imply supported: the capability oracle may report a
// recognized option as unsupported on this host, in which case validation
// rejects it before any mutation.
type OptionDef struct {
	Name        string // long name, e.g. "noglob"
	Flag        string // optional single-character flag, e.g. "f"
	Description string
	Default     bool // initial on/off state
	Supported   bool
}

// optionSubcontext holds the recognized option set and the current on/off
// state of each option.
type optionSubcontext struct {
	defs   map[string]OptionDef // by long name
	byFlag map[string]string    // flag char -> long name
	states map[string]bool      // long name -> on/off
	mu     sync.RWMutex
}

func newOptionSubcontext() *optionSubcontext {
	return &optionSubcontext{
		defs:   make(map[string]OptionDef),
		byFlag: make(map[string]string),
		states: make(map[string]bool),
	}
}

// RegisterOption makes an option known, setting its initial state.
func (o *optionSubcontext) RegisterOption(def OptionDef) error {
	if !IsValidIdentifier(def.Name) {
		return fmt.Errorf("invalid option name %q", def.Name)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, exists := o.defs[def.Name]; exists {
		return fmt.Errorf("option %s already registered", def.Name)
	}
	o.defs[def.Name] = def
	if def.Flag != "" {
		o.byFlag[def.Flag] = def.Name
	}
	o.states[def.Name] = def.Default
	return nil
}

// LookupOption resolves a long name or single-character flag to its
// definition.
func (o *optionSubcontext) LookupOption(nameOrFlag string) (OptionDef, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if def, ok := o.defs[nameOrFlag]; ok {
		return def, true
	}
	if long, ok := o.byFlag[nameOrFlag]; ok {
		return o.defs[long], true
	}
	return OptionDef{}, false
}

// OptionState returns the current on/off state of an option by long name,
// and whether the option is recognized.
func (o *optionSubcontext) OptionState(name string) (on bool, known bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if _, ok := o.defs[name]; !ok {
		return false, false
	}
	return o.states[name], true
}

// SetOption sets an option on or off. Unknown or unsupported options are
// rejected; this is the runtime failure the applier reports as fatal.
func (o *optionSubcontext) SetOption(name string, on bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	def, ok := o.defs[name]
	if !ok {
		return fmt.Errorf("unknown option %q", name)
	}
	if !def.Supported {
		return fmt.Errorf("option %q is not supported on this host", name)
	}
	o.states[name] = on
	return nil
}
