package statemachine

import (
	"fmt"

	"github.com/mgree/modernish/internal/services"
	"github.com/mgree/modernish/pkg/scopetypes"
)

// Applier applies validated scope items to global state. It runs only
// after the originals have been pushed on the save stack. A failure here
// is fatal: unlike validation failures it occurs after state has begun
// changing, so it cannot be treated as recoverable.
type Applier struct {
	variableService *services.VariableService
	optionService   *services.OptionService
}

// NewApplier creates an applier over the given services.
func NewApplier(variableService *services.VariableService, optionService *services.OptionService) *Applier {
	return &Applier{
		variableService: variableService,
		optionService:   optionService,
	}
}

// Apply applies every item in order. Option items must already be
// canonicalized to long names by the validator.
func (a *Applier) Apply(items []scopetypes.ScopeItem) error {
	for _, item := range items {
		if err := a.applyOne(item); err != nil {
			return fmt.Errorf("%w: %s: %v", scopetypes.ErrApplyFailure, item.String(), err)
		}
	}
	return nil
}

func (a *Applier) applyOne(item scopetypes.ScopeItem) error {
	switch item.Kind {
	case scopetypes.VariableUnset:
		return a.variableService.Unset(item.Name)
	case scopetypes.VariableAssign:
		return a.variableService.Set(item.Name, item.Value)
	case scopetypes.OptionSet:
		return a.optionService.SetOption(item.Name, true)
	case scopetypes.OptionUnset:
		return a.optionService.SetOption(item.Name, false)
	case scopetypes.OptionWithArg:
		return a.optionService.SetOption(item.Name, item.Value == "on")
	default:
		return fmt.Errorf("unrecognized item kind %d", int(item.Kind))
	}
}
