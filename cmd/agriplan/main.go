// Command agriplan runs the recommendation engine, the projection calculator
// and the activity scheduler from the command line.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"agriplan/pkg/catalog"
	"agriplan/pkg/projection"
	"agriplan/pkg/recommend"
	"agriplan/pkg/report"
	"agriplan/pkg/schedule"
)

const dateLayout = "2006-01-02"

type rootOpts struct {
	overrides string
	asJSON    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &rootOpts{}
	root := &cobra.Command{
		Use:           "agriplan",
		Short:         "Crop recommendations, business plans and activity calendars",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&o.overrides, "overrides", "", "catalog overrides YAML file")
	root.PersistentFlags().BoolVar(&o.asJSON, "json", false, "print JSON")

	root.AddCommand(
		newRecommendCmd(o),
		newProjectCmd(o),
		newActivitiesCmd(o),
		newCatalogCmd(o),
	)
	return root
}

func (o *rootOpts) catalog() (*catalog.Catalog, error) {
	return catalog.LoadOverrides(o.overrides)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRecommendCmd(o *rootOpts) *cobra.Command {
	var r recommend.SoilReading
	var ruleset string
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend a crop for a soil reading",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := r.Validate(); err != nil {
				return err
			}
			rec, err := recommend.NewLocal(ruleset)
			if err != nil {
				return err
			}
			out := rec.Recommend(cmd.Context(), r)
			if o.asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Crop)
			if len(out.Rules) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "rules: %s\n", strings.Join(out.Rules, ", "))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&r.N, "n", 0, "nitrogen")
	f.Float64Var(&r.P, "p", 0, "phosphorus")
	f.Float64Var(&r.K, "k", 0, "potassium")
	f.Float64Var(&r.Temperature, "temperature", 0, "temperature in °C")
	f.Float64Var(&r.Humidity, "humidity", 0, "relative humidity in %")
	f.Float64Var(&r.PH, "ph", 0, "soil pH")
	f.Float64Var(&r.Rainfall, "rainfall", 0, "rainfall in mm")
	f.StringVar(&ruleset, "ruleset", recommend.RulesetPlanner, "ruleset: "+strings.Join(recommend.Names(), ", "))
	return cmd
}

func newProjectCmd(o *rootOpts) *cobra.Command {
	var in projection.Input
	var scenario, xlsx string
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the five-year business plan for a crop",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := o.catalog()
			if err != nil {
				return err
			}
			p, err := projection.New(cat).Project(in)
			if err != nil {
				return err
			}
			if xlsx != "" {
				f, err := os.Create(xlsx)
				if err != nil {
					return err
				}
				if err := report.WriteXLSX(f, p); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
			}
			if scenario == "" {
				if o.asJSON {
					return writeJSON(cmd.OutOrStdout(), p)
				}
				return printScenarios(cmd.OutOrStdout(), p.Scenarios()...)
			}
			s, err := p.Scenario(scenario)
			if err != nil {
				return err
			}
			if o.asJSON {
				return writeJSON(cmd.OutOrStdout(), s)
			}
			return printScenarios(cmd.OutOrStdout(), s)
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Region, "region", "", "region slug")
	f.StringVar(&in.WaterSource, "water", "", "water source slug")
	f.StringVar(&in.SoilType, "soil", "", "soil type slug")
	f.StringVar(&in.Crop, "crop", "", "crop name")
	f.Float64Var(&in.AreaHectares, "area", 1, "area in hectares")
	f.StringVar(&scenario, "scenario", "", "base, upside or downside (default all)")
	f.StringVar(&xlsx, "xlsx", "", "also write the workbook to this file")
	return cmd
}

func printScenarios(w io.Writer, ss ...projection.Scenario) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "scenario\tinvestment\tannual costs\trevenue\tprofit\troi %\tbreak-even")
	for _, s := range ss {
		be := "n/a"
		if s.BreakEvenYears != nil {
			be = fmt.Sprintf("%.2f", *s.BreakEvenYears)
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%s\n",
			s.Name, s.InitialInvestment, s.AnnualCosts, s.YearlyRevenue, s.Profit, s.ROI, be)
	}
	return tw.Flush()
}

func newActivitiesCmd(o *rootOpts) *cobra.Command {
	var crop, planted, now string
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "List the upcoming activities for a crop planted on a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := o.catalog()
			if err != nil {
				return err
			}
			p, ok := cat.Crop(crop)
			if !ok || !p.Plannable() {
				return fmt.Errorf("crop %q: %w", crop, catalog.ErrUnknownCrop)
			}
			pd, err := time.Parse(dateLayout, planted)
			if err != nil {
				return fmt.Errorf("--planted: %w", catalog.ErrInvalidInput)
			}
			today := schedule.StartOfDay(time.Now())
			if now != "" {
				if today, err = time.Parse(dateLayout, now); err != nil {
					return fmt.Errorf("--now: %w", catalog.ErrInvalidInput)
				}
			}
			acts := schedule.DeriveActivities(p.Slug, p, pd, today)
			if o.asJSON {
				return writeJSON(cmd.OutOrStdout(), acts)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, a := range acts {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", a.DueDate.Format(dateLayout), a.Type, a.Notes)
			}
			fmt.Fprintf(tw, "%s\tHarvest\t\n", schedule.HarvestDate(p, pd).Format(dateLayout))
			return tw.Flush()
		},
	}
	f := cmd.Flags()
	f.StringVar(&crop, "crop", "", "crop name")
	f.StringVar(&planted, "planted", "", "planting date (YYYY-MM-DD)")
	f.StringVar(&now, "now", "", "reference day (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("crop")
	_ = cmd.MarkFlagRequired("planted")
	return cmd
}

func newCatalogCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the crops, regions, water sources and soil types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := o.catalog()
			if err != nil {
				return err
			}
			if o.asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"crops":         cat.Crops(),
					"regions":       cat.Regions(),
					"water_sources": cat.WaterSources(),
					"soil_types":    cat.SoilTypes(),
				})
			}
			w := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "crop\tgrowth days\twater need\trevenue factor\tsoils")
			for _, c := range cat.Crops() {
				soils := make([]string, len(c.SoilPreferences))
				for i, s := range c.SoilPreferences {
					soils[i] = string(s)
				}
				fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%s\n", c.Name, c.GrowthDurationDays, c.WaterNeed, c.RevenueFactor, strings.Join(soils, ","))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(w, "\nregions: %v\nwater sources: %v\nsoil types: %v\n", cat.Regions(), cat.WaterSources(), cat.SoilTypes())
			return nil
		},
	}
}
