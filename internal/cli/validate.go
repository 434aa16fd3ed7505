package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cebarrett/Silents-Mechanisms/internal/battery"
	"github.com/cebarrett/Silents-Mechanisms/internal/config"
	"github.com/cebarrett/Silents-Mechanisms/internal/generator"
)

// ValidationResult is the validate output.
type ValidationResult struct {
	Valid     bool             `json:"valid"`
	Generator generator.Config `json:"generator"`
	Battery   battery.Config   `json:"battery"`
	Items     int              `json:"items"`
	Furnace   map[string]int   `json:"furnace"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config.cue>",
		Short: "Check a configuration file",
		Long: `Unify a CUE configuration file with the built-in schema and report the
resolved machine constants, or every error found.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	cfg, err := config.Load(path)
	if err != nil {
		return formatter.fail(ExitFailure, ErrCodeConfig, "invalid configuration", err)
	}
	if _, err := cfg.Registry(); err != nil {
		return formatter.fail(ExitFailure, ErrCodeConfig, "invalid item table", err)
	}
	formatter.VerboseLog("Resolved %s", path)

	result := ValidationResult{
		Valid:     true,
		Generator: cfg.Generator,
		Battery:   cfg.Battery,
		Items:     len(cfg.Items),
		Furnace:   cfg.Furnace,
	}
	return formatter.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "✓ %s is valid\n", path)
		fmt.Fprintf(w, "  generator: maxEnergy=%d maxTransfer=%d energyPerTick=%d\n",
			cfg.Generator.MaxEnergy, cfg.Generator.MaxTransfer, cfg.Generator.EnergyPerTick)
		fmt.Fprintf(w, "  battery: capacity=%d maxTransfer=%d\n", cfg.Battery.Capacity, cfg.Battery.MaxTransfer)
		fmt.Fprintf(w, "  %d item(s), %d fuel(s)\n", len(cfg.Items), len(cfg.Furnace))
	})
}
