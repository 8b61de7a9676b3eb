// Package dbfmt renders machine-readable reports (currently the
// reverse-dependency scan) as either JSON or YAML, giving operators a
// structured alternate format alongside the default JSON output.
package dbfmt

import (
	"encoding/json"

	"github.com/fcanata061/srcpkg/internal/revdep"
	"gopkg.in/yaml.v3"
)

// Format selects the report encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// EncodeRevdepReport renders broken in the requested format.
func EncodeRevdepReport(broken []revdep.Broken, format Format) ([]byte, error) {
	if broken == nil {
		broken = []revdep.Broken{}
	}
	switch format {
	case YAML:
		return yaml.Marshal(broken)
	default:
		return json.MarshalIndent(broken, "", "  ")
	}
}
