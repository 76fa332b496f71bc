// Package scopetypes defines the core types for the modernish scope engine.
// This file contains the scope-item variants, the argument transform policy,
// and the handshake protocol types shared between the engine and its hosts.
package scopetypes

import "fmt"

// ItemKind identifies the variant of a ScopeItem.
type ItemKind int

const (
	// VariableUnset makes a variable local and initially unset (token: NAME).
	VariableUnset ItemKind = iota
	// VariableAssign makes a variable local with a new value (token: NAME=VALUE).
	VariableAssign
	// OptionSet enables a single-character flag option for the block (token: -X).
	OptionSet
	// OptionUnset disables a single-character flag option for the block (token: +X).
	OptionUnset
	// OptionWithArg sets or unsets a long named option (tokens: -o NAME, +o NAME).
	OptionWithArg
)

// ScopeItem is one variable- or option-affecting directive supplied when
// entering a scoped block. It is a closed tagged variant: raw tokens are
// classified exactly once at the boundary and the rest of the engine
// dispatches on Kind, never on strings.
type ScopeItem struct {
	Kind ItemKind
	// Name is the variable name, the flag character, or the long option name.
	// For option items the validator canonicalizes Name to the long option
	// name before the item reaches the stack or the applier.
	Name string
	// Value is the assigned value for VariableAssign, or "on"/"off" for
	// OptionWithArg.
	Value string
}

// String returns the item in its source token form, for diagnostics.
func (i ScopeItem) String() string {
	switch i.Kind {
	case VariableUnset:
		return i.Name
	case VariableAssign:
		return i.Name + "=" + i.Value
	case OptionSet:
		return "-" + i.Name
	case OptionUnset:
		return "+" + i.Name
	case OptionWithArg:
		if i.Value == "off" {
			return "+o " + i.Name
		}
		return "-o " + i.Name
	default:
		return fmt.Sprintf("ScopeItem(%d)", int(i.Kind))
	}
}

// IsVariable reports whether the item targets a variable.
func (i ScopeItem) IsVariable() bool {
	return i.Kind == VariableUnset || i.Kind == VariableAssign
}

// SplitMode controls how trailing argument tokens are split into fields.
type SplitMode int

const (
	// NoSplit passes every trailing token through verbatim, one field per
	// original token, including empty strings. This is the default and is
	// deliberately more conservative than the host's ambient splitting.
	NoSplit SplitMode = iota
	// HostDefaultSplit splits on whitespace the way the host does by
	// default, dropping empty fields.
	HostDefaultSplit
	// SplitOnCharset splits each token on any character in the charset,
	// preserving empty fields between consecutive delimiters.
	SplitOnCharset
)

// GlobMode controls pathname expansion of the (possibly split) fields.
type GlobMode int

const (
	// NoGlob performs no pathname expansion. The default.
	NoGlob GlobMode = iota
	// Glob expands each field as a pathname pattern; a field with zero
	// matches is kept as its literal text.
	Glob
	// GlobDropEmptyMatches expands each field as a pathname pattern; a
	// field with zero matches is dropped.
	GlobDropEmptyMatches
)

// TransformPolicy describes how the trailing token list becomes the body's
// local argument vector.
type TransformPolicy struct {
	Split   SplitMode
	Charset string // delimiter set for SplitOnCharset
	Glob    GlobMode
}

// DefaultTransformPolicy returns the NoSplit/NoGlob identity policy.
func DefaultTransformPolicy() TransformPolicy {
	return TransformPolicy{Split: NoSplit, Glob: NoGlob}
}

// IsIdentity reports whether the policy is the strict identity map.
func (p TransformPolicy) IsIdentity() bool {
	return p.Split == NoSplit && p.Glob == NoGlob
}

// HandshakeState is the per-activation state of the exactly-once handshake.
type HandshakeState int

const (
	// Uninitialized means the activation has not run setup yet.
	Uninitialized HandshakeState = iota
	// Armed means setup succeeded and the body may be entered.
	Armed
	// Consumed means the body has been entered; any further decision call
	// is suppressed rather than re-running setup or the body.
	Consumed
	// Retired means the activation has been unwound and is dead.
	Retired
)

// String returns the state name for logging.
func (s HandshakeState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Armed:
		return "armed"
	case Consumed:
		return "consumed"
	case Retired:
		return "retired"
	default:
		return fmt.Sprintf("HandshakeState(%d)", int(s))
	}
}

// Signal is the decision function's answer to the host's repetition
// construct.
type Signal int

const (
	// SignalSetup means setup just ran; call again, do not enter the body yet.
	SignalSetup Signal = iota
	// SignalEnter means enter the body now; it will execute exactly once.
	SignalEnter
	// SignalLeave means leave the construct, do not (re-)enter the body.
	SignalLeave
)

// String returns the signal name for logging.
func (s Signal) String() string {
	switch s {
	case SignalSetup:
		return "setup"
	case SignalEnter:
		return "enter"
	case SignalLeave:
		return "leave"
	default:
		return fmt.Sprintf("Signal(%d)", int(s))
	}
}
