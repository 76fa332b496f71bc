// Package embedded provides access to embedded catalog data files.
package embedded

import _ "embed"

// OptionCatalogData contains the embedded host option catalog YAML data.
//
//go:embed options.yaml
var OptionCatalogData []byte
