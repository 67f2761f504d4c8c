package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valorem-chem/milabel/pkg/config"
	"github.com/valorem-chem/milabel/pkg/scale"
)

// newSizesCmd creates the sizes command, which prints the label size table
// with the scale factor each size renders at.
func newSizesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "sizes",
		Short: "List available label sizes and their scale factors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			for _, s := range cfg.SizeTable() {
				printKeyValue(s.Name, fmt.Sprintf("%.1f x %.1f mm  (scale %.2f)",
					s.WidthMM, s.HeightMM, scale.Factor(s)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (TOML)")
	return cmd
}
