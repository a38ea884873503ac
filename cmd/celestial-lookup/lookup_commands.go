package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oxygene76/celestial-lookup/internal/types"
	"github.com/oxygene76/celestial-lookup/pkg/analysis"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/format"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/raw"
	"github.com/oxygene76/celestial-lookup/pkg/catalog"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <body>",
	Short: "Fetch a body and print its quantities",
	Long: `Fetch a body from the source named in the catalog and print its
quantities in the configured display order.

Examples:
  celestial-lookup lookup Earth
  celestial-lookup lookup "Kepler-22 b" --json
  celestial-lookup lookup Ceres --long`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive quantities from values given on the command line",
	Long: `Run the unit conversion and physics on values given as flags, without
fetching anything. Flags that are not set are treated as unknown; an unset
eccentricity is taken as 0 (circular orbit).

Example:
  celestial-lookup derive --mass-value 5.97237 --mass-exponent 24 --radius-km 6371.0084 --semi-major-au 1`,
	Args: cobra.NoArgs,
	RunE: runDerive,
}

var compareCmd = &cobra.Command{
	Use:   "compare <body> <body>...",
	Short: "Compare one quantity across several bodies",
	Long: `Look up every body and summarize one quantity: how many bodies report
it, its mean, standard deviation and median, and the bodies ranked from
largest to smallest.

Example:
  celestial-lookup compare Mercury Venus Earth Mars --quantity surface_gravity`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCompare,
}

func addLookupFlags() {
	lookupCmd.Flags().Bool("json", false, "Print the full report as JSON")
	lookupCmd.Flags().Bool("long", false, "Also print each value without an exponent")

	deriveCmd.Flags().String("name", "custom", "Name shown for the body")
	deriveCmd.Flags().Float64("mass-value", 0, "Mass mantissa (kg)")
	deriveCmd.Flags().Int("mass-exponent", 0, "Mass exponent, mass = value × 10^exponent")
	deriveCmd.Flags().Float64("gm", 0, "Gravitational parameter GM (km^3/s^2), used when no mass is given")
	deriveCmd.Flags().Float64("radius-km", 0, "Mean radius (km)")
	deriveCmd.Flags().Float64("semi-major-km", 0, "Semi-major axis (km)")
	deriveCmd.Flags().Float64("semi-major-au", 0, "Semi-major axis (AU)")
	deriveCmd.Flags().Float64("eccentricity", 0, "Orbital eccentricity")
	deriveCmd.Flags().Float64("orbit-days", 0, "Sidereal orbital period (days)")
	deriveCmd.Flags().Float64("rotation-days", 0, "Sidereal rotation period (days)")
	deriveCmd.Flags().Bool("json", false, "Print the full report as JSON")
	deriveCmd.Flags().Bool("long", false, "Also print each value without an exponent")
	deriveCmd.MarkFlagsMutuallyExclusive("semi-major-km", "semi-major-au")

	compareCmd.Flags().String("quantity", "mass", "Quantity key to compare")
	compareCmd.Flags().Bool("json", false, "Print the summary as JSON")
}

func runLookup(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	asJSON, _ := cmd.Flags().GetBool("json")
	long, _ := cmd.Flags().GetBool("long")

	pipeline, err := newPipeline()
	if err != nil {
		return err
	}

	report, err := pipeline.Lookup(cmd.Context(), name)
	if err != nil {
		return err
	}
	return printReport(cmd.OutOrStdout(), report, asJSON, long)
}

func runDerive(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	name, _ := flags.GetString("name")
	asJSON, _ := flags.GetBool("json")
	long, _ := flags.GetBool("long")

	rec := raw.Record{}
	number := func(flag string, f raw.Field, u raw.Unit) {
		if flags.Changed(flag) {
			v, _ := flags.GetFloat64(flag)
			rec.Set(f, raw.Number(v, u))
		}
	}
	if flags.Changed("mass-value") {
		mantissa, _ := flags.GetFloat64("mass-value")
		exponent, _ := flags.GetInt("mass-exponent")
		rec.Set(raw.Mass, raw.Scientific(mantissa, exponent, raw.Kilogram))
	}
	number("gm", raw.GM, raw.KilometerCubedPerSecondSquared)
	number("radius-km", raw.MeanRadius, raw.Kilometer)
	number("semi-major-km", raw.SemiMajorAxis, raw.Kilometer)
	number("semi-major-au", raw.SemiMajorAxis, raw.AstronomicalUnit)
	number("eccentricity", raw.Eccentricity, raw.Dimensionless)
	number("orbit-days", raw.OrbitalPeriod, raw.Day)
	number("rotation-days", raw.RotationPeriod, raw.Day)

	pipeline, err := newPipeline()
	if err != nil {
		return err
	}
	report := pipeline.Evaluate(catalog.Entry{Name: name}, rec)
	return printReport(cmd.OutOrStdout(), report, asJSON, long)
}

func runCompare(cmd *cobra.Command, args []string) error {
	key, _ := cmd.Flags().GetString("quantity")
	asJSON, _ := cmd.Flags().GetBool("json")

	pipeline, err := newPipeline()
	if err != nil {
		return err
	}
	reports, err := analysis.Collect(cmd.Context(), pipeline, args)
	if err != nil {
		return err
	}
	summary, err := analysis.Compare(reports, key)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, summary)
	}

	fmt.Fprintf(out, "%s across %d bodies (%d with data)\n", summary.Name, len(reports), summary.Count)
	fmt.Fprintln(out, format.Format("  Mean", summary.Mean, summary.Unit))
	fmt.Fprintln(out, format.Format("  Std dev", summary.StdDev, summary.Unit))
	fmt.Fprintln(out, format.Format("  Median", summary.Median, summary.Unit))
	for i, r := range summary.Ranking {
		fmt.Fprintf(out, "%3d. %s\n", i+1, r.Text)
	}
	if len(summary.Missing) > 0 {
		fmt.Fprintf(out, "No data: %s\n", strings.Join(summary.Missing, ", "))
	}
	return nil
}

func printReport(out io.Writer, report *types.LookupReport, asJSON, long bool) error {
	if asJSON {
		return writeJSON(out, report)
	}

	header := report.Body
	if report.Symbol != "" {
		header += " " + report.Symbol
	}
	if report.Source != "" {
		header += fmt.Sprintf(" (%s, %s:%s)", report.Kind, report.Source, report.SourceID)
	}
	fmt.Fprintln(out, header)

	for _, d := range report.Display {
		if long && d.Notation != format.NotationUnknown {
			fmt.Fprintf(out, "  %s  [%s]\n", d.Text, d.Long)
			continue
		}
		fmt.Fprintf(out, "  %s\n", d.Text)
	}
	if report.Orbits != "" {
		fmt.Fprintln(out, report.Orbits)
	}
	if report.Derived.AssumedCircularOrbit {
		fmt.Fprintln(out, "Eccentricity unknown, orbital values assume a circular orbit")
	}
	for _, issue := range report.Issues {
		fmt.Fprintf(out, "Warning: %s\n", issue)
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
