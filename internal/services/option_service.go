package services

import (
	"fmt"

	"gopkg.in/yaml.v3"

	shellcontext "github.com/mgree/modernish/internal/context"
	"github.com/mgree/modernish/internal/data/embedded"
)

// optionCatalogEntry is the YAML shape of one catalog entry.
type optionCatalogEntry struct {
	Name        string `yaml:"name"`
	Flag        string `yaml:"flag,omitempty"`
	Description string `yaml:"description,omitempty"`
	Default     bool   `yaml:"default"`
	Supported   bool   `yaml:"supported"`
}

// optionCatalog is the YAML shape of the embedded option catalog.
type optionCatalog struct {
	Options []optionCatalogEntry `yaml:"options"`
}

// OptionService manages the host's named on/off options and acts as the
// capability oracle consumed during scope-item validation. The recognized
// option set comes from the embedded YAML catalog.
type OptionService struct {
	initialized bool
	ctx         *shellcontext.ShellContext
}

// NewOptionService creates a new OptionService instance.
func NewOptionService() *OptionService {
	return &OptionService{
		initialized: false,
	}
}

// Name returns the service name "option" for registration.
func (o *OptionService) Name() string {
	return "option"
}

// Initialize loads the embedded option catalog and registers every entry
// with the global context.
func (o *OptionService) Initialize() error {
	o.ctx = shellcontext.GetGlobalContext()

	var catalog optionCatalog
	if err := yaml.Unmarshal(embedded.OptionCatalogData, &catalog); err != nil {
		return fmt.Errorf("failed to parse option catalog: %w", err)
	}

	for _, entry := range catalog.Options {
		def := shellcontext.OptionDef{
			Name:        entry.Name,
			Flag:        entry.Flag,
			Description: entry.Description,
			Default:     entry.Default,
			Supported:   entry.Supported,
		}
		if err := o.ctx.RegisterOption(def); err != nil {
			// Already registered means a shared context was reused; the
			// catalog is immutable so the existing entry is identical.
			continue
		}
	}

	o.initialized = true
	return nil
}

// SupportsOption is the capability oracle: it reports whether the host
// recognizes and supports the named option (long name or flag character).
func (o *OptionService) SupportsOption(nameOrFlag string) bool {
	if !o.initialized {
		return false
	}
	def, ok := o.ctx.LookupOption(nameOrFlag)
	return ok && def.Supported
}

// ResolveOption canonicalizes a long name or flag character to the long
// option name. The second return value reports whether the option is
// recognized at all.
func (o *OptionService) ResolveOption(nameOrFlag string) (string, bool) {
	if !o.initialized {
		return "", false
	}
	def, ok := o.ctx.LookupOption(nameOrFlag)
	if !ok {
		return "", false
	}
	return def.Name, true
}

// SetOption sets an option on or off by long name.
func (o *OptionService) SetOption(name string, on bool) error {
	if !o.initialized {
		return fmt.Errorf("option service not initialized")
	}
	return o.ctx.SetOption(name, on)
}

// OptionState returns the current on/off state of an option by long name.
func (o *OptionService) OptionState(name string) (on bool, known bool, err error) {
	if !o.initialized {
		return false, false, fmt.Errorf("option service not initialized")
	}
	on, known = o.ctx.OptionState(name)
	return on, known, nil
}

func init() {
	if err := GlobalRegistry.RegisterService(NewOptionService()); err != nil {
		panic(fmt.Sprintf("failed to register option service: %v", err))
	}
}
