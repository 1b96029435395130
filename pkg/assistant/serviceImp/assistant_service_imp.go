package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"agriplan/pkg/assistant/service"
	"agriplan/pkg/catalog"
	kbService "agriplan/pkg/kb/service"
	profileService "agriplan/pkg/profile/service"
	"agriplan/pkg/projection"
	"agriplan/pkg/recommend"
	soilService "agriplan/pkg/soil/service"
)

const (
	defaultPlanCrop  = "Millet"
	defaultOtherCrop = "Wheat"
	planArea         = 1.0
	yieldHits        = 3
)

type Deps struct {
	Recommender recommend.Recommender
	Soil        soilService.SoilService
	Profile     profileService.ProfileService
	Notes       kbService.NoteService
	Catalog     *catalog.Catalog
}

type assistantSvc struct {
	d    Deps
	calc *projection.Calculator

	mu    sync.Mutex
	convo map[string]service.Conversation
}

func NewAssistantService(d Deps) service.AssistantService {
	if d.Catalog == nil {
		d.Catalog = catalog.Default()
	}
	return &assistantSvc{d: d, calc: projection.New(d.Catalog), convo: map[string]service.Conversation{}}
}

func (s *assistantSvc) Conversation(uid string) service.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.convo[uid]
}

func (s *assistantSvc) Reset(uid string) {
	s.mu.Lock()
	delete(s.convo, uid)
	s.mu.Unlock()
}

// update applies fn to the user's current context under the lock.
func (s *assistantSvc) update(uid string, fn func(c *service.Conversation)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.convo[uid]
	fn(&c)
	s.convo[uid] = c
}

type followUp int

const (
	noFollowUp followUp = iota
	planFollowUp
	yieldFollowUp
)

// takeFollowUp clears the pending question an affirmative answer refers to
// and returns it with its crop. Only one of two racing answers gets it.
func (s *assistantSvc) takeFollowUp(uid string) (followUp, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.convo[uid]
	crop := orDefault(c.LastRecommendedCrop, defaultPlanCrop)
	switch {
	case c.AwaitingBusinessPlan:
		c.AwaitingBusinessPlan = false
		s.convo[uid] = c
		return planFollowUp, crop
	case c.AwaitingYieldInfo:
		c.AwaitingYieldInfo = false
		s.convo[uid] = c
		return yieldFollowUp, crop
	}
	return noFollowUp, ""
}

// Reply routes one message by keyword. A pending follow-up question takes
// precedence over everything else when the user answers affirmatively.
func (s *assistantSvc) Reply(ctx context.Context, uid, message string) (service.Reply, error) {
	in := strings.ToLower(strings.TrimSpace(message))
	if in == "" {
		return service.Reply{}, fmt.Errorf("empty message: %w", catalog.ErrInvalidInput)
	}
	words := tokens(in)

	if affirmative(words) {
		switch kind, crop := s.takeFollowUp(uid); kind {
		case planFollowUp:
			return s.businessPlan(ctx, uid, crop)
		case yieldFollowUp:
			return s.yieldDetails(ctx, crop)
		}
	}

	switch {
	case strings.Contains(in, "recommend") && (strings.Contains(in, "crop") || strings.Contains(in, "plant")):
		return s.recommend(ctx, uid)

	case strings.Contains(in, "business") && strings.Contains(in, "plan"):
		crop := s.cropIn(in)
		if crop == "" {
			if r, ok, err := s.d.Soil.Latest(ctx, uid); err != nil {
				return service.Reply{}, err
			} else if ok {
				crop = s.d.Recommender.Recommend(ctx, r).Crop
			}
		}
		crop = orDefault(crop, defaultOtherCrop)
		s.update(uid, func(c *service.Conversation) { c.LastRecommendedCrop = crop })
		return s.businessPlan(ctx, uid, crop)

	case strings.Contains(in, "yield") || strings.Contains(in, "production"):
		named := s.cropIn(in)
		var crop string
		s.update(uid, func(c *service.Conversation) {
			crop = orDefault(named, orDefault(c.LastRecommendedCrop, defaultOtherCrop))
			*c = service.Conversation{LastRecommendedCrop: crop, AwaitingYieldInfo: true}
		})
		return s.yieldSummary(ctx, crop)

	case strings.Contains(in, "soil") || strings.Contains(in, "data"):
		return s.soilEcho(ctx, uid)

	case strings.Contains(in, "water") || strings.Contains(in, "irrigation"):
		return s.water(ctx, uid)

	case len(words) == 1 && affirmative(words):
		return service.Reply{Intent: service.IntentConfirm, Text: "I'm not sure what you're saying yes to. " +
			"Could you provide more details about what you'd like to know? I can help with crop recommendations, " +
			"business planning, yield information, or soil analysis."}, nil
	}
	return service.Reply{Intent: service.IntentHelp, Text: helpText}, nil
}

const helpText = "I can help with:\n\n" +
	"• Crop recommendations based on soil data\n" +
	"• Business planning and financial projections\n" +
	"• Yield and production information\n" +
	"• Water management strategies\n\n" +
	"What information are you looking for today?"

func (s *assistantSvc) recommend(ctx context.Context, uid string) (service.Reply, error) {
	r, ok, err := s.d.Soil.Latest(ctx, uid)
	if err != nil {
		return service.Reply{}, err
	}
	if !ok {
		return service.Reply{Intent: service.IntentRecommend, Text: "To give you a personalized crop recommendation, " +
			"I need information about your soil. Save a soil reading first and ask me again."}, nil
	}
	rec := s.d.Recommender.Recommend(ctx, r)
	s.update(uid, func(c *service.Conversation) {
		*c = service.Conversation{LastRecommendedCrop: rec.Crop, AwaitingBusinessPlan: true}
	})
	return service.Reply{
		Intent: service.IntentRecommend,
		Crop:   rec.Crop,
		Text: fmt.Sprintf("Based on your soil data (N:%g, P:%g, K:%g, pH:%g), I recommend growing %s.\n\n"+
			"Would you like to see a business plan for this crop?", r.N, r.P, r.K, r.PH, rec.Crop),
	}, nil
}

func (s *assistantSvc) businessPlan(ctx context.Context, uid, crop string) (service.Reply, error) {
	prof, err := s.d.Profile.Get(ctx, uid)
	if err != nil {
		return service.Reply{}, err
	}
	p, err := s.calc.Project(projection.Input{
		Region:       prof.Region,
		WaterSource:  prof.WaterSource,
		SoilType:     prof.SoilType,
		Crop:         crop,
		AreaHectares: planArea,
	})
	if err != nil {
		return service.Reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here's a business plan summary for %s (per hectare):\n\n", crop)
	fmt.Fprintf(&b, "• Initial investment: %.0f MAD\n", p.Base.InitialInvestment)
	fmt.Fprintf(&b, "• Annual revenue (estimated): %.0f MAD\n", p.Base.YearlyRevenue)
	fmt.Fprintf(&b, "• Annual costs: %.0f MAD\n", p.Base.AnnualCosts)
	fmt.Fprintf(&b, "• Expected ROI: %.1f%% annually\n", p.Base.ROI)
	if p.Base.BreakEvenYears != nil {
		fmt.Fprintf(&b, "• Break-even period: %.1f years\n", *p.Base.BreakEvenYears)
	} else {
		b.WriteString("• Break-even period: not reached, the base scenario runs at a loss\n")
	}
	fmt.Fprintf(&b, "• Range across scenarios: ROI %.1f%% to %.1f%%\n", p.Downside.ROI, p.Upside.ROI)
	if !prof.Complete() {
		b.WriteString("\nSet your region, soil type and water source in your profile for a tailored plan.")
	} else {
		b.WriteString("\nOpen the Business Plan tool to adjust the area or export the full workbook.")
	}
	return service.Reply{Intent: service.IntentBusinessPlan, Crop: crop, Text: b.String(), Projection: &p}, nil
}

func (s *assistantSvc) searchNotes(ctx context.Context, crop string) ([]kbService.Hit, error) {
	if s.d.Notes == nil {
		return nil, nil
	}
	return s.d.Notes.Search(ctx, crop+" yield production", crop, yieldHits)
}

func (s *assistantSvc) yieldSummary(ctx context.Context, crop string) (service.Reply, error) {
	hits, err := s.searchNotes(ctx, crop)
	if err != nil {
		return service.Reply{}, err
	}
	r := service.Reply{Intent: service.IntentYield, Crop: crop}
	if len(hits) == 0 {
		r.Text = fmt.Sprintf("I don't have yield notes for %s yet. Add crop notes to the knowledge base "+
			"and I'll answer from them.\n\nWould you like to see detailed production statistics?", crop)
		return r, nil
	}
	r.Text = fmt.Sprintf("Yield data for %s:\n\n• %s\n\nWould you like to see detailed production statistics?",
		crop, firstLine(hits[0].Text))
	r.Sources = sources(hits[:1])
	return r, nil
}

func (s *assistantSvc) yieldDetails(ctx context.Context, crop string) (service.Reply, error) {
	hits, err := s.searchNotes(ctx, crop)
	if err != nil {
		return service.Reply{}, err
	}
	r := service.Reply{Intent: service.IntentYield, Crop: crop}
	if len(hits) == 0 {
		r.Text = fmt.Sprintf("No detailed production statistics for %s are on file.", crop)
		return r, nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Detailed production notes for %s:\n", crop)
	for _, h := range hits {
		fmt.Fprintf(&b, "\n• %s", strings.TrimSpace(h.Text))
	}
	r.Text = b.String()
	r.Sources = sources(hits)
	return r, nil
}

func (s *assistantSvc) soilEcho(ctx context.Context, uid string) (service.Reply, error) {
	r, ok, err := s.d.Soil.Latest(ctx, uid)
	if err != nil {
		return service.Reply{}, err
	}
	if !ok {
		return service.Reply{Intent: service.IntentSoil, Text: "You haven't entered any soil data yet. " +
			"Would you like to enter soil data now to get personalized crop recommendations?"}, nil
	}
	return service.Reply{Intent: service.IntentSoil, Text: fmt.Sprintf("Your current soil data:\n\n"+
		"• Nitrogen (N): %g mg/kg\n• Phosphorus (P): %g mg/kg\n• Potassium (K): %g mg/kg\n• pH: %g\n"+
		"• Temperature: %g°C\n• Humidity: %g%%\n• Rainfall: %g mm",
		r.N, r.P, r.K, r.PH, r.Temperature, r.Humidity, r.Rainfall)}, nil
}

func (s *assistantSvc) water(ctx context.Context, uid string) (service.Reply, error) {
	text := "Water management is crucial for agriculture in Morocco. Here are some options:\n\n" +
		"• Drip irrigation: Most efficient, saves 30-40% water\n" +
		"• Sprinkler systems: Good for certain crops, medium efficiency\n" +
		"• Traditional flooding: Least efficient but lowest initial cost\n\n"
	prof, err := s.d.Profile.Get(ctx, uid)
	if err != nil {
		return service.Reply{}, err
	}
	if prof.WaterSource != "" {
		text += fmt.Sprintf("Your profile lists %s as your water source. ", prof.WaterSource)
	}
	text += "What crop are you planning to grow?"
	return service.Reply{Intent: service.IntentWater, Text: text}, nil
}

// cropIn returns the catalog name of the first crop mentioned in the
// message, or "".
func (s *assistantSvc) cropIn(in string) string {
	for _, c := range s.d.Catalog.Crops() {
		if strings.Contains(in, strings.ToLower(c.Name)) || strings.Contains(in, strings.ReplaceAll(c.Slug, "-", " ")) {
			return c.Name
		}
	}
	if strings.Contains(in, "corn") {
		if c, ok := s.d.Catalog.Crop("maize"); ok {
			return c.Name
		}
	}
	return ""
}

func tokens(in string) []string {
	return strings.FieldsFunc(in, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '!' || r == '?'
	})
}

func affirmative(words []string) bool {
	for _, w := range words {
		switch w {
		case "yes", "y", "sure", "ok", "okay", "yeah":
			return true
		}
	}
	return false
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func firstLine(s string) string {
	return strings.TrimSpace(strings.SplitN(strings.TrimSpace(s), "\n", 2)[0])
}

func sources(hits []kbService.Hit) []string {
	seen := map[string]bool{}
	var out []string
	for _, h := range hits {
		src := h.SourceURL
		if src == "" {
			src = h.DocTitle
		}
		if src != "" && !seen[src] {
			seen[src] = true
			out = append(out, src)
		}
	}
	return out
}
