package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charlie0129/unitconv/pkg/catalog"
)

func NewCategoriesCommand() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:     "categories",
		Short:   "List measurement categories",
		GroupID: gBasic,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var names []string
			if local {
				names = catalog.Names()
			} else {
				var err error
				names, err = apiClient.GetCategories()
				if err != nil {
					return fmt.Errorf("failed to get categories: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			for _, n := range names {
				fmt.Fprintln(out, n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "read the built-in table instead of asking the daemon")

	return cmd
}

func NewUnitsCommand() *cobra.Command {
	var (
		local      bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "units [category]",
		Short:   "List the units of a category",
		GroupID: gBasic,
		Example: `  unitconv units Length
  unitconv units temperature --local`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var category *catalog.Category
			if local {
				c, ok := catalog.Get(args[0])
				if !ok {
					return fmt.Errorf("unknown category %q, available: %v", args[0], catalog.Names())
				}
				category = &c
			} else {
				var err error
				category, err = apiClient.GetCategory(args[0])
				if err != nil {
					return fmt.Errorf("failed to get category: %w", err)
				}
			}

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), category)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, bold("%s:", category.Name))
			for _, u := range category.Units {
				fmt.Fprintf(out, "  %-24s %s\n", u.Label, bold("%s", u.Identifier))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&local, "local", false, "read the built-in table instead of asking the daemon")
	f.BoolVar(&jsonOutput, "json", false, "print the category as JSON")

	return cmd
}
