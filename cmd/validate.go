package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/heatplan/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	RunE:  validate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}
	fmt.Printf("configuration valid: water %v..%v, outdoor %v..%v, %v minute steps\n",
		cfg.Heating.WaterMin, cfg.Heating.WaterMax,
		cfg.Heating.OutdoorMin, cfg.Heating.OutdoorMax,
		cfg.Heating.TimeBaseMinutes)
	return nil
}
