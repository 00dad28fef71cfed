package reference

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/fertiplan/internal/domain/models"
)

//go:embed data/reference.yaml
var embeddedTables []byte

// ErrInvalidTables indicates reference data that the recommendation engine cannot work with.
var ErrInvalidTables = errors.New("invalid reference tables")

// TipLists holds the educational tip categories.
type TipLists struct {
	AcidicSoil                   []string `yaml:"acidic_soil"`
	AlkalineSoil                 []string `yaml:"alkaline_soil"`
	LowOrganicMatter             []string `yaml:"low_organic_matter"`
	WaterManagement              []string `yaml:"water_management"`
	IntegratedNutrientManagement []string `yaml:"integrated_nutrient_management"`
}

// WeatherThresholds bound the conditions considered suitable for application.
type WeatherThresholds struct {
	RainThresholdMM      float64  `yaml:"rain_threshold_mm"`
	MinTemperatureC      float64  `yaml:"min_temperature_c"`
	MaxTemperatureC      float64  `yaml:"max_temperature_c"`
	MinHumidityPct       float64  `yaml:"min_humidity_pct"`
	MaxHumidityPct       float64  `yaml:"max_humidity_pct"`
	MaxWindSpeedMS       float64  `yaml:"max_wind_speed_ms"`
	UnsuitableConditions []string `yaml:"unsuitable_conditions"`
}

type document struct {
	DefaultBaseYield string                      `yaml:"default_base_yield"`
	Crops            []models.CropProfile        `yaml:"crops"`
	Fertilizers      []models.FertilizerSpec     `yaml:"fertilizers"`
	Regions          []models.RegionalAdjustment `yaml:"regions"`
	Tips             TipLists                    `yaml:"tips"`
	Weather          WeatherThresholds           `yaml:"weather"`
}

// Catalog is the immutable, indexed view of the reference tables. It is safe for concurrent use.
type Catalog struct {
	defaultBaseYield string
	crops            map[models.CropID]models.CropProfile
	cropOrder        []models.CropID
	fertilizers      map[models.FertilizerID]models.FertilizerSpec
	fertilizerOrder  []models.FertilizerID
	regions          map[models.RegionID]models.RegionalAdjustment
	regionOrder      []models.RegionID
	tips             TipLists
	weather          WeatherThresholds
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the embedded tables. It panics if they are malformed.
func Default() *Catalog {
	defaultOnce.Do(func() {
		catalog, err := Parse(embeddedTables)
		if err != nil {
			panic(err)
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}

// Load reads the tables from path, or returns Default when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference tables %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes a YAML document into a validated Catalog.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode reference tables: %w", err)
	}

	c := &Catalog{
		defaultBaseYield: doc.DefaultBaseYield,
		crops:            make(map[models.CropID]models.CropProfile, len(doc.Crops)),
		fertilizers:      make(map[models.FertilizerID]models.FertilizerSpec, len(doc.Fertilizers)),
		regions:          make(map[models.RegionID]models.RegionalAdjustment, len(doc.Regions)),
		tips:             doc.Tips,
		weather:          doc.Weather,
	}

	for _, crop := range doc.Crops {
		if crop.ID == "" {
			return nil, fmt.Errorf("%w: crop without id", ErrInvalidTables)
		}
		if _, dup := c.crops[crop.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate crop %s", ErrInvalidTables, crop.ID)
		}
		c.crops[crop.ID] = crop
		c.cropOrder = append(c.cropOrder, crop.ID)
	}

	for _, fert := range doc.Fertilizers {
		if _, dup := c.fertilizers[fert.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate fertilizer %s", ErrInvalidTables, fert.ID)
		}
		c.fertilizers[fert.ID] = fert
		c.fertilizerOrder = append(c.fertilizerOrder, fert.ID)
	}

	for _, region := range doc.Regions {
		c.regions[region.ID] = region
		c.regionOrder = append(c.regionOrder, region.ID)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// validate makes sure every divisor used by the allocator is present and nonzero.
func (c *Catalog) validate() error {
	required := []struct {
		id     models.FertilizerID
		target func(models.NPK) float64
	}{
		{models.FertilizerNPKComplex, func(v models.NPK) float64 { return v.P * v.K }},
		{models.FertilizerDAP, func(v models.NPK) float64 { return v.P }},
		{models.FertilizerMOP, func(v models.NPK) float64 { return v.K }},
		{models.FertilizerUrea, func(v models.NPK) float64 { return v.N }},
	}

	for _, r := range required {
		spec, ok := c.fertilizers[r.id]
		if !ok {
			return fmt.Errorf("%w: missing fertilizer %s", ErrInvalidTables, r.id)
		}
		if r.target(spec.Content) <= 0 {
			return fmt.Errorf("%w: fertilizer %s has no content for its target nutrient", ErrInvalidTables, r.id)
		}
	}

	if len(c.crops) == 0 {
		return fmt.Errorf("%w: no crops", ErrInvalidTables)
	}

	return nil
}

// Crop looks up a crop profile.
func (c *Catalog) Crop(id models.CropID) (models.CropProfile, bool) {
	crop, ok := c.crops[id]
	return crop, ok
}

// Crops lists crop profiles in table order.
func (c *Catalog) Crops() []models.CropProfile {
	out := make([]models.CropProfile, 0, len(c.cropOrder))
	for _, id := range c.cropOrder {
		out = append(out, c.crops[id])
	}
	return out
}

// CropIDs returns the known crop ids sorted alphabetically.
func (c *Catalog) CropIDs() []string {
	ids := make([]string, 0, len(c.crops))
	for id := range c.crops {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	return ids
}

// Fertilizer looks up a fertilizer spec.
func (c *Catalog) Fertilizer(id models.FertilizerID) (models.FertilizerSpec, bool) {
	spec, ok := c.fertilizers[id]
	return spec, ok
}

// Fertilizers lists fertilizer specs in table order.
func (c *Catalog) Fertilizers() []models.FertilizerSpec {
	out := make([]models.FertilizerSpec, 0, len(c.fertilizerOrder))
	for _, id := range c.fertilizerOrder {
		out = append(out, c.fertilizers[id])
	}
	return out
}

// Region looks up a regional adjustment.
func (c *Catalog) Region(id models.RegionID) (models.RegionalAdjustment, bool) {
	region, ok := c.regions[id]
	return region, ok
}

// Regions lists regional adjustments in table order.
func (c *Catalog) Regions() []models.RegionalAdjustment {
	out := make([]models.RegionalAdjustment, 0, len(c.regionOrder))
	for _, id := range c.regionOrder {
		out = append(out, c.regions[id])
	}
	return out
}

// Tips returns the educational tip lists.
func (c *Catalog) Tips() TipLists {
	return c.tips
}

// Weather returns the suitability thresholds.
func (c *Catalog) Weather() WeatherThresholds {
	return c.weather
}

// BaseYield returns the yield label for a crop, falling back to the table default.
func (c *Catalog) BaseYield(id models.CropID) string {
	if crop, ok := c.crops[id]; ok && crop.BaseYield != "" {
		return crop.BaseYield
	}
	return c.defaultBaseYield
}
