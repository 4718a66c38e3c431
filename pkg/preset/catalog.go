// Package preset holds the static workload catalog: raw presets, Helm chart
// wrappers, probe and resource tables, and the secret-key predicate.
package preset

import (
	_ "embed"
	"sync"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	eferrors "github.com/endfield/endfield/pkg/errors"
)

var (
	//go:embed data/catalog.yaml
	catalogData []byte

	catalogOnce   sync.Once
	cachedCatalog *Catalog
	cachedErr     error
)

// Catalog is the full set of known presets. It is loaded once from embedded
// data and shared for the lifetime of the process.
type Catalog struct {
	Presets     []Preset     `json:"presets" yaml:"presets"`
	HelmPresets []HelmPreset `json:"helm_presets" yaml:"helmPresets"`
}

// Load parses the embedded catalog on first call and caches it. The data is
// compiled in, so a parse failure is a build defect, not a runtime condition.
func Load() (*Catalog, error) {
	catalogOnce.Do(func() {
		var c Catalog
		if err := yaml.Unmarshal(catalogData, &c); err != nil {
			cachedErr = eferrors.Wrap(eferrors.ErrCodeInternal, "failed to parse embedded preset catalog", err)
			return
		}
		cachedCatalog = &c
	})
	if cachedErr != nil {
		return nil, cachedErr
	}
	return cachedCatalog, nil
}

// Preset looks up a raw preset by type id.
func (c *Catalog) Preset(typeID string) (*Preset, bool) {
	for i := range c.Presets {
		if c.Presets[i].TypeID == typeID {
			return &c.Presets[i], true
		}
	}
	return nil, false
}

// HelmPreset looks up a Helm wrapper preset by type id.
func (c *Catalog) HelmPreset(typeID string) (*HelmPreset, bool) {
	for i := range c.HelmPresets {
		if c.HelmPresets[i].TypeID == typeID {
			return &c.HelmPresets[i], true
		}
	}
	return nil, false
}

// TypeIDs returns all raw preset ids in catalog order.
func (c *Catalog) TypeIDs() []string {
	ids := make([]string, 0, len(c.Presets))
	for i := range c.Presets {
		ids = append(ids, c.Presets[i].TypeID)
	}
	return ids
}

// Suggest returns the closest known preset id for an unknown one, or ""
// when nothing is within edit distance 3. Used for CLI error messages.
func (c *Catalog) Suggest(typeID string) string {
	best := ""
	bestDist := 4
	for i := range c.Presets {
		d := levenshtein.ComputeDistance(typeID, c.Presets[i].TypeID)
		if d < bestDist {
			bestDist = d
			best = c.Presets[i].TypeID
		}
	}
	return best
}

var titleCaser = cases.Title(language.English)

// Title returns a human-readable display name for a preset id, preferring
// the catalog's DisplayName and falling back to title-casing the id.
func (c *Catalog) Title(typeID string) string {
	if p, ok := c.Preset(typeID); ok && p.DisplayName != "" {
		return p.DisplayName
	}
	return titleCaser.String(typeID)
}
