package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/miosa/storefront/catalog"
)

func newMockCmd(c *cli) *cobra.Command {
	var (
		categories int
		items      int
		seed       int64
	)
	cmd := &cobra.Command{
		Use:   "mock [file]",
		Short: "Write a generated demo catalog",
		Long: `Generates a deterministic demo catalog and writes it as YAML. The same
seed always produces the same catalog, item ids included.

Example:
  storefront mock --categories 12 --items 40 shop.yaml
  storefront --catalog shop.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if categories < 1 || items < 0 {
				return fmt.Errorf("mock: need at least one category and a non-negative item count")
			}
			cat := catalog.Mock(categories, items, seed)
			if err := catalog.Write(args[0], cat); err != nil {
				return err
			}
			c.logger.Info("mock catalog written",
				zap.String("path", args[0]),
				zap.Int("categories", categories),
				zap.Int("items", cat.ItemCount()))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d categories, %d items to %s\n",
				categories, cat.ItemCount(), args[0])
			return nil
		},
	}
	cmd.Flags().IntVar(&categories, "categories", 8, "Number of categories")
	cmd.Flags().IntVar(&items, "items", 24, "Items per category")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Generator seed")
	return cmd
}
