// Package parser classifies raw scope-item tokens into the closed
// tagged-variant grammar consumed by the scope engine. Classification is
// pure: it never consults or mutates interpreter state, so the capability
// check and all mutation happen strictly after it.
package parser

import (
	"fmt"
	"strings"

	"github.com/mgree/modernish/internal/context"
	"github.com/mgree/modernish/pkg/scopetypes"
)

// Separator marks the end of scope items and the start of trailing
// arguments.
const Separator = "--"

// ItemList is the result of classifying one scope-item token list.
type ItemList struct {
	Items []scopetypes.ScopeItem
	// Policy collects the --split/--glob/--nglob flags found among the
	// items. PolicyRequested is true when any such flag was given, which
	// makes trailing tokens mandatory.
	Policy          scopetypes.TransformPolicy
	PolicyRequested bool
	// Trailing holds the tokens after the separator, untouched.
	Trailing     []string
	HasSeparator bool
}

// ClassifyItems parses an ordered token list into scope items, transform
// flags, and trailing arguments. Grammar failures are reported with the
// offending token; nothing is mutated on failure.
func ClassifyItems(tokens []string) (*ItemList, error) {
	list := &ItemList{Policy: scopetypes.DefaultTransformPolicy()}

	i := 0
	for ; i < len(tokens); i++ {
		token := tokens[i]

		if token == Separator {
			list.HasSeparator = true
			list.Trailing = append(list.Trailing, tokens[i+1:]...)
			break
		}

		switch {
		case token == "--split":
			list.Policy.Split = scopetypes.HostDefaultSplit
			list.Policy.Charset = ""
			list.PolicyRequested = true

		case strings.HasPrefix(token, "--split="):
			charset := strings.TrimPrefix(token, "--split=")
			if charset == "" {
				return nil, fmt.Errorf("%w: %q: empty delimiter set", scopetypes.ErrInvalidItem, token)
			}
			list.Policy.Split = scopetypes.SplitOnCharset
			list.Policy.Charset = charset
			list.PolicyRequested = true

		case token == "--glob":
			list.Policy.Glob = scopetypes.Glob
			list.PolicyRequested = true

		case token == "--nglob":
			list.Policy.Glob = scopetypes.GlobDropEmptyMatches
			list.PolicyRequested = true

		case token == "-o" || token == "+o":
			if i+1 >= len(tokens) || tokens[i+1] == Separator {
				return nil, fmt.Errorf("%w: %s", scopetypes.ErrMissingArgument, token)
			}
			name := tokens[i+1]
			if !context.IsValidIdentifier(name) {
				return nil, fmt.Errorf("%w: %q is not a valid option name", scopetypes.ErrInvalidItem, name)
			}
			value := "on"
			if token == "+o" {
				value = "off"
			}
			list.Items = append(list.Items, scopetypes.ScopeItem{
				Kind:  scopetypes.OptionWithArg,
				Name:  name,
				Value: value,
			})
			i++

		case strings.HasPrefix(token, "-"), strings.HasPrefix(token, "+"):
			flag := token[1:]
			if len(flag) != 1 {
				return nil, fmt.Errorf("%w: %q: flag options take exactly one character", scopetypes.ErrInvalidItem, token)
			}
			kind := scopetypes.OptionSet
			if token[0] == '+' {
				kind = scopetypes.OptionUnset
			}
			list.Items = append(list.Items, scopetypes.ScopeItem{Kind: kind, Name: flag})

		case strings.Contains(token, "="):
			parts := strings.SplitN(token, "=", 2)
			if !context.IsValidIdentifier(parts[0]) {
				return nil, fmt.Errorf("%w: %q is not a valid variable name", scopetypes.ErrInvalidItem, parts[0])
			}
			list.Items = append(list.Items, scopetypes.ScopeItem{
				Kind:  scopetypes.VariableAssign,
				Name:  parts[0],
				Value: parts[1],
			})

		default:
			if !context.IsValidIdentifier(token) {
				return nil, fmt.Errorf("%w: %q is not a valid variable name", scopetypes.ErrInvalidItem, token)
			}
			list.Items = append(list.Items, scopetypes.ScopeItem{
				Kind: scopetypes.VariableUnset,
				Name: token,
			})
		}
	}

	return list, nil
}
