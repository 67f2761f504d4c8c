package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/valorem-chem/milabel/pkg/catalog"
	"github.com/valorem-chem/milabel/pkg/config"
	"github.com/valorem-chem/milabel/pkg/label"
)

// newCatalogCmd creates the catalog command group for maintaining the
// fixed product attributes labels are rendered from.
func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Maintain the product catalog",
	}
	cmd.AddCommand(newCatalogAddCmd())
	cmd.AddCommand(newCatalogListCmd())
	cmd.AddCommand(newCatalogRemoveCmd())
	return cmd
}

// openStore resolves the catalog path from flags/config and opens the
// file-backed store.
func openStore(configPath, catalogPath string) (catalog.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if catalogPath == "" {
		catalogPath = cfg.CatalogPath
	}
	return catalog.NewFileStore(catalogPath), nil
}

func newCatalogAddCmd() *cobra.Command {
	var configPath, catalogPath string
	var e label.CatalogEntry

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a catalog entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(configPath, catalogPath)
			if err != nil {
				return err
			}
			if err := store.Put(e); err != nil {
				return err
			}
			printSuccess("stored %s (%s)", e.ID, e.ProductName)
			return nil
		},
	}

	cmd.Flags().StringVar(&e.ID, "id", "", "product id (required)")
	cmd.Flags().StringVar(&e.ProductName, "name", "", "product name (required)")
	cmd.Flags().StringVar(&e.NSN, "nsn", "", "NATO stock number, 13 digits with optional separators (required)")
	cmd.Flags().StringVar(&e.NATOCode, "nato-code", "", "NATO product code")
	cmd.Flags().StringVar(&e.JSDReference, "jsd", "", "JSD reference")
	cmd.Flags().StringVar(&e.Specification, "spec", "", "governing specification")
	cmd.Flags().StringVar(&e.ContractorDetails, "contractor", "", "contractor details, lines separated by '|'")
	cmd.Flags().StringVar(&e.UnitOfIssue, "unit", "", "unit of issue")
	cmd.Flags().IntVar(&e.ShelfLifeMonths, "shelf-life", 0, "shelf life in months (0 = default 24)")
	cmd.Flags().StringVar(&e.SafetyMarkings, "safety", "", "safety / movement markings")
	cmd.Flags().StringVar(&e.HazardCode, "hazard", "", "hazardous material class")
	cmd.Flags().StringVar(&e.CapacityWeight, "capacity", "", "capacity or net weight")
	cmd.Flags().BoolVar(&e.BatchLotManaged, "batch-managed", false, "product is batch/lot managed")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (overrides config)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (TOML)")

	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("nsn")
	return cmd
}

func newCatalogListCmd() *cobra.Command {
	var configPath, catalogPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(configPath, catalogPath)
			if err != nil {
				return err
			}
			entries, err := store.List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("catalog is empty")
				return nil
			}
			for _, e := range entries {
				printKeyValue(e.ID, e.ProductName+"  NSN "+e.NSN)
				if e.ShelfLifeMonths > 0 {
					printDetail("shelf life " + strconv.Itoa(e.ShelfLifeMonths) + " months")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (overrides config)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (TOML)")
	return cmd
}

func newCatalogRemoveCmd() *cobra.Command {
	var configPath, catalogPath string

	cmd := &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove a catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(configPath, catalogPath)
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			printSuccess("removed %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (overrides config)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (TOML)")
	return cmd
}
