package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/racquetleague/leaguer/internal/apperr"
	"github.com/racquetleague/leaguer/internal/audit"
	"github.com/racquetleague/leaguer/internal/config"
	"github.com/racquetleague/leaguer/internal/normalize"
	"github.com/racquetleague/leaguer/internal/smt"
	"github.com/racquetleague/leaguer/internal/solve"
	"github.com/racquetleague/leaguer/internal/tabular"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass the path as an argument", defaultConfigFile)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "leaguer",
		Short: "Round-robin league schedule generator",
	}

	var genWeeks, genRestDays, genSpread int
	var genStartDate, genOutput string
	generateCmd := &cobra.Command{
		Use:          "generate [config.yaml]",
		Short:        "Generate a schedule from a config file",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(args)
			if err != nil {
				return err
			}
			var overrides generateOverrides
			if cmd.Flags().Changed("weeks") {
				overrides.weeks = &genWeeks
			}
			if cmd.Flags().Changed("rest-days") {
				overrides.restDays = &genRestDays
			}
			if cmd.Flags().Changed("spread") {
				overrides.spread = &genSpread
			}
			if cmd.Flags().Changed("start-date") {
				overrides.startDate = &genStartDate
			}
			if cmd.Flags().Changed("output") {
				overrides.output = genOutput
			}
			return runGenerate(configPath, overrides)
		},
	}
	generateCmd.Flags().IntVar(&genWeeks, "weeks", 0, "Override the configured number of competition weeks")
	generateCmd.Flags().IntVar(&genRestDays, "rest-days", 0, "Override the configured minimum inter-match rest days")
	generateCmd.Flags().IntVar(&genSpread, "spread", 0, "Override the configured week spread")
	generateCmd.Flags().StringVar(&genStartDate, "start-date", "", "Override the configured competition start date (YYYY-MM-DD)")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Override the derived output file path")

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	rootCmd.AddCommand(generateCmd, initCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps an apperr.Kind to a non-zero process exit code, per §6.
func exitCode(err error) int {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return int(appErr.Kind) + 1
	}
	return 1
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}
	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Printf("Created %s\n", outputPath)
	return nil
}

const configTemplate = `# Leaguer run configuration
# ==========================
directory: ./season-2026-spring
start_date: "2026-04-25"
weeks: 10
rest_days: 5
spread: 1
csv: false
`

// generateOverrides holds the generate command's flag values that should
// take precedence over whatever config.yaml loaded, per SPEC_FULL §10.1.
// A nil pointer (or, for output, an empty string) means the flag was not
// passed on the command line.
type generateOverrides struct {
	weeks, restDays, spread *int
	startDate               *string
	output                  string
}

func (o generateOverrides) apply(cfg *config.Config) error {
	if o.weeks != nil {
		cfg.Weeks = *o.weeks
	}
	if o.restDays != nil {
		cfg.RestDays = *o.restDays
	}
	if o.spread != nil {
		cfg.Spread = *o.spread
	}
	if o.startDate != nil {
		t, err := config.ParseDate(*o.startDate)
		if err != nil {
			return fmt.Errorf("--start-date: %w", err)
		}
		cfg.StartDate = config.Date{Time: t}
	}
	return cfg.Validate()
}

func runGenerate(configPath string, overrides generateOverrides) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := overrides.apply(cfg); err != nil {
		return err
	}
	outputPath := cfg.OutputPath()
	if overrides.output != "" {
		outputPath = overrides.output
	}

	fixtures, err := tabular.ReadFixtures(cfg.FixturesPath())
	if err != nil {
		return err
	}
	slots, err := tabular.ReadSlots(cfg.SlotsPath())
	if err != nil {
		return err
	}
	oldFixtures, err := tabular.ReadOldFixtures(cfg.OldFixturesPath())
	if err != nil {
		return err
	}

	cat, err := normalize.Build(fixtures, slots, oldFixtures)
	if err != nil {
		return err
	}

	b := smt.NewBuilder()
	result, err := solve.Run(b, cat, cfg.Weeks, cfg.RestDays, cfg.Spread)
	if err != nil {
		return err
	}

	fmt.Println()
	for _, div := range cat.Divisions {
		bounds := result.Bounds[div.Name]
		fmt.Printf("%-20s home/away imbalance = %-3d  away twice at same club = %-3d  repeat of old fixture = %d\n",
			div.Name, bounds.K1, bounds.K2, bounds.K3)
	}
	fmt.Println()

	divisionTeams := make(map[string][]string, len(cat.Divisions))
	for _, d := range cat.Divisions {
		divisionTeams[d.Name] = d.Teams
	}
	if err := tabular.WriteFixtures(outputPath, fixtures, result.Matches, divisionTeams); err != nil {
		return err
	}
	fmt.Printf("Schedule written to %s\n", outputPath)

	pairs := audit.SharedPairsFromCatalogue(cat)
	clashes := audit.Run(result.Matches, pairs)
	if len(clashes) == 0 {
		fmt.Println("Self-audit: no shared-slot clashes")
	} else {
		for _, c := range clashes {
			warn := apperr.New(apperr.SharedSlotResidualClash, "%s and %s both home on %s", c.Team1, c.Team2, c.Date.Format("02 Jan"))
			fmt.Printf("! %s\n", warn.Error())
		}
	}

	return nil
}
