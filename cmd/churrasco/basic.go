package main

import (
	"github.com/spf13/cobra"

	"github.com/churrasco-tools/churrasco/pkg/meat"
	"github.com/churrasco-tools/churrasco/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewMeatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "meats",
		Short:   "List the available meats and their default weights",
		GroupID: gPlanning,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			weights := cfg.DefaultWeights()
			prices := cfg.Prices()
			for _, c := range meat.All() {
				cmd.Printf("  %-9s %-13s weight %s", c, c.DisplayName(), bold("%g", weights[c]))
				if p, ok := prices[c]; ok {
					cmd.Printf("  price R$ %s", bold("%.2f", p))
				}
				cmd.Println()
			}
			return nil
		},
	}
}
