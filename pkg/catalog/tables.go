package catalog

// Display names, region labels and picker values used by the mobile client
// that do not match a table key directly.
var aliases = map[string]string{
	"meknes-fes":        "fes-meknes",
	"fès-meknès":        "fes-meknes",
	"rain-fed":          "rainwater",
	"rainfed":           "rainwater",
	"irrigation-system": "irrigation",
	"well-water":        "well",
	"river-water":       "river",
	"citrus-fruits":     "citrus",
}

var regionTable = map[Region]RegionFactor{
	"marrakech-safi":             {Yield: 0.85, WaterEfficiency: 0.8, Cost: 0.9},
	"casablanca-settat":          {Yield: 0.95, WaterEfficiency: 0.9, Cost: 1.1},
	"rabat-sale-kenitra":         {Yield: 1.0, WaterEfficiency: 0.85, Cost: 1.0},
	"fes-meknes":                 {Yield: 0.9, WaterEfficiency: 0.75, Cost: 0.85},
	"souss-massa":                {Yield: 1.1, WaterEfficiency: 0.7, Cost: 0.95},
	"oriental":                   {Yield: 0.7, WaterEfficiency: 0.6, Cost: 0.8},
	"draa-tafilalet":             {Yield: 0.6, WaterEfficiency: 0.5, Cost: 0.75},
	"tangier-tetouan-al-hoceima": {Yield: 0.95, WaterEfficiency: 0.9, Cost: 1.05},
	"beni-mellal-khenifra":       {Yield: 0.85, WaterEfficiency: 0.8, Cost: 0.9},
	"guelmim-oued-noun":          {Yield: 0.7, WaterEfficiency: 0.6, Cost: 0.8},
	"laayoune-sakia-el-hamra":    {Yield: 0.6, WaterEfficiency: 0.5, Cost: 0.8},
	"dakhla-oued-ed-dahab":       {Yield: 0.65, WaterEfficiency: 0.55, Cost: 0.85},
}

var waterTable = map[WaterSource]WaterFactor{
	WaterIrrigation: {Yield: 1.2, Cost: 1.3, Reliability: 0.95},
	WaterRain:       {Yield: 0.8, Cost: 0.7, Reliability: 0.6},
	WaterWell:       {Yield: 1.0, Cost: 0.9, Reliability: 0.85},
	WaterRiver:      {Yield: 1.1, Cost: 0.8, Reliability: 0.75},
}

var soilTable = map[SoilType]SoilFactor{
	SoilClay:   {Yield: 0.9, WaterRetention: 1.2, Fertility: 1.0},
	SoilSandy:  {Yield: 0.7, WaterRetention: 0.6, Fertility: 0.8},
	SoilLoamy:  {Yield: 1.2, WaterRetention: 1.0, Fertility: 1.2},
	SoilChalky: {Yield: 0.8, WaterRetention: 0.7, Fertility: 0.7},
	SoilPeaty:  {Yield: 1.1, WaterRetention: 1.3, Fertility: 1.1},
}

// financials carries the business-plan factors per crop slug. Crops that are
// only in the planner table take the neutral factors.
type financials struct {
	waterNeed     float64
	soilPref      []SoilType
	revenueFactor float64
}

var financialTable = map[string]financials{
	"wheat":      {0.8, []SoilType{SoilLoamy, SoilClay}, 0.9},
	"barley":     {0.7, []SoilType{SoilSandy, SoilLoamy}, 0.85},
	"olives":     {0.6, []SoilType{SoilChalky, SoilLoamy}, 1.2},
	"citrus":     {1.0, []SoilType{SoilLoamy}, 1.4},
	"tomatoes":   {0.9, []SoilType{SoilLoamy, SoilSandy}, 1.1},
	"potatoes":   {0.85, []SoilType{SoilLoamy, SoilSandy}, 1.0},
	"dates":      {0.7, []SoilType{SoilSandy}, 1.3},
	"grapes":     {0.75, []SoilType{SoilLoamy, SoilChalky}, 1.25},
	"almonds":    {0.65, []SoilType{SoilLoamy, SoilSandy}, 1.35},
	"sugar-beet": {0.9, []SoilType{SoilClay, SoilLoamy}, 0.95},
}

var financialNames = map[string]string{
	"citrus":     "Citrus",
	"potatoes":   "Potatoes",
	"dates":      "Dates",
	"almonds":    "Almonds",
	"sugar-beet": "Sugar Beet",
}

// planner holds the crop-management data: varieties, cycle length and the
// activity template used to build a task calendar.
type planner struct {
	name       string
	varieties  []string
	growthDays int
	waterEvery int
	fertEvery  int
	activities []ActivityTemplate
}

var plannerTable = []planner{
	{"Rice", []string{"Basmati", "Japonica"}, 120, 3, 14, []ActivityTemplate{
		{ActivityWatering, 3, "Keep soil saturated"},
		{ActivityFertilizing, 14, "NPK balanced fertilizer"},
		{ActivityPesticide, 30, "Check for stem borers"},
	}},
	{"Wheat", []string{"Durum", "Common"}, 160, 7, 21, []ActivityTemplate{
		{ActivityWatering, 7, "Moderate irrigation"},
		{ActivityFertilizing, 21, "Nitrogen-rich fertilizer"},
		{ActivityHarvesting, 160, "Check grain hardness"},
	}},
	{"Cotton", []string{"Pima", "Upland"}, 180, 10, 30, []ActivityTemplate{
		{ActivityWatering, 10, "Deep watering"},
		{ActivityFertilizing, 30, "Phosphorus-rich fertilizer"},
		{ActivityPesticide, 45, "Check for bollworms"},
	}},
	{"Chickpea", []string{"Desi", "Kabuli"}, 110, 8, 25, []ActivityTemplate{
		{ActivityWatering, 8, "Light irrigation"},
		{ActivityFertilizing, 25, "Low nitrogen fertilizer"},
		{ActivityHarvesting, 110, "Harvest when pods are dry"},
	}},
	{"Papaya", []string{"Red Lady", "Sunrise"}, 280, 5, 30, []ActivityTemplate{
		{ActivityWatering, 5, "Regular watering"},
		{ActivityFertilizing, 30, "Balanced fertilizer"},
		{ActivityPruning, 90, "Remove lower leaves"},
	}},
	{"Grapes", []string{"Muscat", "Syrah"}, 170, 7, 45, []ActivityTemplate{
		{ActivityWatering, 7, "Drip irrigation"},
		{ActivityPruning, 45, "Canopy management"},
		{ActivityPesticide, 60, "Check for powdery mildew"},
	}},
	{"Maize", []string{"Sweet Corn", "Field Corn"}, 100, 7, 21, []ActivityTemplate{
		{ActivityWatering, 7, "Regular watering"},
		{ActivityFertilizing, 21, "Nitrogen-rich fertilizer"},
		{ActivityHarvesting, 100, "Check for kernel moisture"},
	}},
	{"Barley", []string{"Two-row", "Six-row"}, 120, 10, 28, []ActivityTemplate{
		{ActivityWatering, 10, "Moderate irrigation"},
		{ActivityFertilizing, 28, "Balanced fertilizer"},
		{ActivityHarvesting, 120, "Harvest when golden color"},
	}},
	// perennial
	{"Pomegranate", []string{"Wonderful", "Mollar"}, 365, 10, 60, []ActivityTemplate{
		{ActivityWatering, 10, "Deep watering"},
		{ActivityPruning, 120, "Structural pruning"},
		{ActivityFertilizing, 60, "Potassium-rich fertilizer"},
	}},
	{"Lentil", []string{"Green", "Red"}, 100, 10, 30, []ActivityTemplate{
		{ActivityWatering, 10, "Light irrigation"},
		{ActivityFertilizing, 30, "Low nitrogen fertilizer"},
		{ActivityHarvesting, 100, "Harvest when pods are dry"},
	}},
	{"Millet", []string{"Pearl", "Foxtail"}, 90, 8, 25, []ActivityTemplate{
		{ActivityWatering, 8, "Moderate watering"},
		{ActivityFertilizing, 25, "Balanced fertilizer"},
		{ActivityHarvesting, 90, "Harvest when grains are firm"},
	}},
	{"Olives", []string{"Picholine Marocaine", "Arbequina"}, 365, 14, 90, []ActivityTemplate{
		{ActivityWatering, 14, "Deep watering"},
		{ActivityPruning, 180, "Remove suckers and thin canopy"},
		{ActivityFertilizing, 90, "Balanced fertilizer"},
	}},
	{"Argan", []string{"Indigenous", "Traditional"}, 365, 20, 120, []ActivityTemplate{
		{ActivityWatering, 20, "Drought-resistant, minimal water"},
		{ActivityPruning, 200, "Light structural pruning"},
		{ActivityHarvesting, 270, "Harvest mature fruits"},
	}},
	{"Tomatoes", []string{"Roma", "Cherry"}, 80, 3, 14, []ActivityTemplate{
		{ActivityWatering, 3, "Regular watering"},
		{ActivityFertilizing, 14, "Balanced fertilizer"},
		{ActivityPruning, 30, "Remove suckers for indeterminate varieties"},
	}},
}

func build() *Catalog {
	c := &Catalog{
		crops:   make(map[string]CropProfile, len(plannerTable)+len(financialTable)),
		regions: make(map[Region]RegionFactor, len(regionTable)),
		water:   make(map[WaterSource]WaterFactor, len(waterTable)),
		soil:    make(map[SoilType]SoilFactor, len(soilTable)),
	}
	for k, v := range regionTable {
		c.regions[k] = v
	}
	for k, v := range waterTable {
		c.water[k] = v
	}
	for k, v := range soilTable {
		c.soil[k] = v
	}
	for _, p := range plannerTable {
		slug := Slug(p.name)
		c.crops[slug] = CropProfile{
			Name:                    p.name,
			Slug:                    slug,
			Varieties:               p.varieties,
			GrowthDurationDays:      p.growthDays,
			WateringIntervalDays:    p.waterEvery,
			FertilizingIntervalDays: p.fertEvery,
			Activities:              p.activities,
			WaterNeed:               NeutralCrop.WaterNeed,
			RevenueFactor:           NeutralCrop.RevenueFactor,
		}
	}
	for slug, f := range financialTable {
		p, ok := c.crops[slug]
		if !ok {
			p = CropProfile{Name: financialNames[slug], Slug: slug}
		}
		p.WaterNeed = f.waterNeed
		p.SoilPreferences = f.soilPref
		p.RevenueFactor = f.revenueFactor
		c.crops[slug] = p
	}
	return c
}
