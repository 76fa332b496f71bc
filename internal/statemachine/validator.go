// Package statemachine implements the modernish scope engine: the
// validate/push/apply/transform pipeline, the exactly-once handshake
// protocol, and the guaranteed-unwind block operation.
package statemachine

import (
	"fmt"

	"github.com/mgree/modernish/internal/parser"
	"github.com/mgree/modernish/internal/services"
	"github.com/mgree/modernish/pkg/scopetypes"
)

// ValidatedScope is a fully validated scope entry request. Option items
// are canonicalized to long option names, so nothing downstream dispatches
// on raw flag characters.
type ValidatedScope struct {
	Items    []scopetypes.ScopeItem
	Policy   scopetypes.TransformPolicy
	Trailing []string
}

// Validator performs the strict validate-before-mutate step: grammar
// classification, capability-oracle checks, and the usage check on the
// transform flags. A Validate that returns an error guarantees no global
// state was touched.
type Validator struct {
	optionService *services.OptionService
}

// NewValidator creates a validator backed by the given capability oracle.
func NewValidator(optionService *services.OptionService) *Validator {
	return &Validator{optionService: optionService}
}

// Validate classifies and validates the raw token list.
func (v *Validator) Validate(tokens []string) (*ValidatedScope, error) {
	list, err := parser.ClassifyItems(tokens)
	if err != nil {
		return nil, err
	}

	if list.PolicyRequested && len(list.Trailing) == 0 {
		return nil, fmt.Errorf("%w: split or glob requested with no arguments to operate on", scopetypes.ErrInvalidUsage)
	}

	validated := &ValidatedScope{
		Items:    make([]scopetypes.ScopeItem, 0, len(list.Items)),
		Policy:   list.Policy,
		Trailing: list.Trailing,
	}

	for _, item := range list.Items {
		if item.IsVariable() {
			validated.Items = append(validated.Items, item)
			continue
		}

		longName, recognized := v.optionService.ResolveOption(item.Name)
		if !recognized || !v.optionService.SupportsOption(item.Name) {
			return nil, fmt.Errorf("%w: %s", scopetypes.ErrUnsupportedOption, item.String())
		}
		canonical := item
		canonical.Name = longName
		validated.Items = append(validated.Items, canonical)
	}

	return validated, nil
}
