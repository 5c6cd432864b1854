package config

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/lixenwraith/dois-mil/grid"
)

// hclConfigFile is the decoding target; pointers distinguish unset attributes
type hclConfigFile struct {
	Size    *int        `hcl:"size,optional"`
	Seed    *uint64     `hcl:"seed,optional"`
	Win     *hclWin     `hcl:"win,block"`
	Spawn   *hclSpawn   `hcl:"spawn,block"`
	Display *hclDisplay `hcl:"display,block"`
	Sound   *hclSound   `hcl:"sound,block"`
}

type hclWin struct {
	Threshold *uint32 `hcl:"threshold,optional"`
	Strict    *bool   `hcl:"strict,optional"`
}

type hclSpawn struct {
	StartTiles   *int           `hcl:"start_tiles,optional"`
	CountWeights hcl.Expression `hcl:"count_weights,optional"`
	TileWeights  hcl.Expression `hcl:"tile_weights,optional"`
}

type hclDisplay struct {
	Color *string `hcl:"color,optional"`
}

type hclSound struct {
	Enabled *bool    `hcl:"enabled,optional"`
	Volume  *float64 `hcl:"volume,optional"`
}

// LoadFile overlays the settings found in an HCL file onto base
func LoadFile(path string, base Config) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}
	return decode(file.Body, path, base)
}

// LoadBytes overlays the settings in src onto base; filename is used in diagnostics
func LoadBytes(src []byte, filename string, base Config) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}
	return decode(file.Body, filename, base)
}

func decode(body hcl.Body, filename string, base Config) (Config, error) {
	var parsed hclConfigFile
	if diags := gohcl.DecodeBody(body, nil, &parsed); diags.HasErrors() {
		return base, fmt.Errorf("failed to decode config %s: %w", filename, diags)
	}

	cfg := base
	setIf(&cfg.Size, parsed.Size)
	setIf(&cfg.Seed, parsed.Seed)

	if w := parsed.Win; w != nil {
		setIf(&cfg.Win.Threshold, w.Threshold)
		setIf(&cfg.Win.Strict, w.Strict)
	}

	if s := parsed.Spawn; s != nil {
		setIf(&cfg.Spawn.StartTiles, s.StartTiles)

		counts, err := weightMap(s.CountWeights, "count_weights")
		if err != nil {
			return base, fmt.Errorf("config %s: %w", filename, err)
		}
		if counts != nil {
			cfg.Spawn.CountWeights = counts
		}

		tiles, err := weightMap(s.TileWeights, "tile_weights")
		if err != nil {
			return base, fmt.Errorf("config %s: %w", filename, err)
		}
		if tiles != nil {
			cfg.Spawn.TileWeights = tiles
		}
	}

	if d := parsed.Display; d != nil {
		setIf(&cfg.Display.Color, d.Color)
	}

	if s := parsed.Sound; s != nil {
		setIf(&cfg.Sound.Enabled, s.Enabled)
		setIf(&cfg.Sound.Volume, s.Volume)
	}

	return cfg, nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// weightMap evaluates a { "value" = weight } object into weights sorted by value.
// Returns nil for an unset attribute.
func weightMap(expr hcl.Expression, name string) ([]grid.Weighted, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: %w", name, diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("%s: expected an object of weights, got %s", name, ty.FriendlyName())
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("%s: value is not known", name)
	}

	out := make([]grid.Weighted, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()

		key, err := strconv.ParseUint(k.AsString(), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%s: key %q is not a positive integer", name, k.AsString())
		}
		if v.IsNull() || v.Type() != cty.Number {
			return nil, fmt.Errorf("%s: weight for %s must be a number", name, k.AsString())
		}
		var weight int
		if err := gocty.FromCtyValue(v, &weight); err != nil {
			return nil, fmt.Errorf("%s: weight for %s: %w", name, k.AsString(), err)
		}
		out = append(out, grid.Weighted{Value: uint32(key), Weight: weight})
	}

	slices.SortFunc(out, func(a, b grid.Weighted) int {
		return cmp.Compare(a.Value, b.Value)
	})
	return out, nil
}
