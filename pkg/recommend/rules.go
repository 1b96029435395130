// Package recommend maps a soil reading to a single crop name with ordered
// threshold rules.
package recommend

import (
	"fmt"
	"sort"

	"agriplan/pkg/catalog"
)

type Rule struct {
	Name  string
	Crop  string
	Match func(SoilReading) bool
}

// Ruleset is evaluated in two passes: the first matching Base rule picks the
// crop (Fallback when none match), then every matching Override replaces it
// in order, so the last matching override wins.
type Ruleset struct {
	Name      string
	Base      []Rule
	Overrides []Rule
	Fallback  string
}

func (rs Ruleset) Evaluate(r SoilReading) string {
	crop := rs.Fallback
	for _, rule := range rs.Base {
		if rule.Match(r) {
			crop = rule.Crop
			break
		}
	}
	for _, rule := range rs.Overrides {
		if rule.Match(r) {
			crop = rule.Crop
		}
	}
	return crop
}

// Trace returns the names of the rules that decided the result, base rule
// first. It is empty when the fallback applied and no override matched.
func (rs Ruleset) Trace(r SoilReading) []string {
	var out []string
	for _, rule := range rs.Base {
		if rule.Match(r) {
			out = append(out, rule.Name)
			break
		}
	}
	for _, rule := range rs.Overrides {
		if rule.Match(r) {
			out = append(out, rule.Name)
		}
	}
	return out
}

const (
	RulesetPlanner   = "planner"
	RulesetAssistant = "assistant"
)

func hot(r SoilReading) bool  { return r.Temperature > 25 }
func cool(r SoilReading) bool { return r.Temperature < 20 }
func mild(r SoilReading) bool { return r.Temperature >= 20 && r.Temperature <= 25 }

// Overrides shared by both tables: alkaline warm dry soils favour olives,
// nitrogen-rich dry air favours argan.
var olivesRule = Rule{Name: "alkaline-warm-dry", Crop: "Olives", Match: func(r SoilReading) bool {
	return r.PH > 7.5 && r.Temperature > 22 && r.Rainfall < 200
}}

// Planner is the canonical table used by the crop planner.
var Planner = Ruleset{
	Name: RulesetPlanner,
	Base: []Rule{
		{"hot-humid-wet", "Rice", func(r SoilReading) bool { return hot(r) && r.Humidity > 70 && r.Rainfall > 200 }},
		{"hot-humid", "Cotton", func(r SoilReading) bool { return hot(r) && r.Humidity > 70 }},
		{"hot-potassium", "Papaya", func(r SoilReading) bool { return hot(r) && r.K > 45 }},
		{"hot", "Chickpea", hot},
		{"cool-humid", "Grapes", func(r SoilReading) bool { return cool(r) && r.Humidity > 65 }},
		{"cool", "Wheat", cool},
		{"mild-nitrogen-phosphorus", "Maize", func(r SoilReading) bool { return mild(r) && r.N > 100 && r.P > 50 }},
		{"mild-nitrogen", "Barley", func(r SoilReading) bool { return mild(r) && r.N > 100 }},
		{"mild-potassium", "Pomegranate", func(r SoilReading) bool { return mild(r) && r.K > 50 }},
		{"mild-alkaline", "Lentil", func(r SoilReading) bool { return mild(r) && r.PH > 7 }},
	},
	Overrides: []Rule{
		olivesRule,
		{"nitrogen-dry-warm", "Argan", func(r SoilReading) bool { return r.N > 90 && r.Humidity < 60 && r.Temperature > 20 }},
	},
	Fallback: "Millet",
}

// Assistant is the coarser table the chat assistant used. It is kept as its
// own ruleset and only selected by configuration.
var Assistant = Ruleset{
	Name: RulesetAssistant,
	Base: []Rule{
		olivesRule,
		{"nitrogen-dry", "Argan", func(r SoilReading) bool { return r.N > 90 && r.Humidity < 60 }},
		{"warm-wet", "Citrus", func(r SoilReading) bool { return r.Temperature > 24 && r.Rainfall > 180 }},
		{"warm", "Dates", func(r SoilReading) bool { return r.Temperature > 24 }},
		{"nitrogen-phosphorus", "Wheat", func(r SoilReading) bool { return r.N > 70 && r.P > 40 }},
		{"low-nutrient", "Millet", func(r SoilReading) bool { return r.N < 90 && r.P < 50 && r.K < 50 }},
	},
	Fallback: "Barley",
}

var rulesets = map[string]Ruleset{
	RulesetPlanner:   Planner,
	RulesetAssistant: Assistant,
}

// ByName returns a registered ruleset. An empty name selects Planner.
func ByName(name string) (Ruleset, error) {
	if name == "" {
		return Planner, nil
	}
	rs, ok := rulesets[name]
	if !ok {
		return Ruleset{}, fmt.Errorf("ruleset %q: %w", name, catalog.ErrInvalidInput)
	}
	return rs, nil
}

func Names() []string {
	out := make([]string, 0, len(rulesets))
	for k := range rulesets {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Recommend evaluates the canonical planner ruleset. It is total: every
// reading, valid or not, yields a crop name.
func Recommend(r SoilReading) string {
	return Planner.Evaluate(r)
}
