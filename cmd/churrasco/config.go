package main

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/churrasco-tools/churrasco/pkg/config"
	"github.com/churrasco-tools/churrasco/pkg/export"
	"github.com/churrasco-tools/churrasco/pkg/meat"
	"github.com/churrasco-tools/churrasco/pkg/plan"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Show or change the presets",
		GroupID: gPresets,
		Long: `Show or change the presets.

Presets are the default weights used to split a new selection of meats, the
grams each guest eats per appetite level, the remembered price of each meat
and where exports go. They live in a JSON or YAML file; pick the file with
--config or the CHURRASCO_CONFIG environment variable.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective presets as JSON",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				raw, err := config.NewRawFileConfigFromConfig(cfg)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(raw)
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write the effective presets to the preset file",
			RunE: func(_ *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				raw, err := config.NewRawFileConfigFromConfig(cfg)
				if err != nil {
					return err
				}
				if err := config.NewFileFromConfig(raw, cfg.Path()).Save(); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
				logrus.Infof("presets written to %s", cfg.Path())
				return nil
			},
		},
		newConfigSetCommand("set-price [meat] [price]", "Remember the price per kilo of a meat",
			func(cfg *config.File, c meat.Category, v float64) error { return cfg.SetPrice(c, v) }),
		newConfigSetCommand("set-weight [meat] [weight]", "Set the default weight of a meat",
			func(cfg *config.File, c meat.Category, v float64) error { return cfg.SetDefaultWeight(c, v) }),
		&cobra.Command{
			Use:   "forget-price [meat]",
			Short: "Forget the remembered price of a meat",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				c, err := meat.Parse(args[0])
				if err != nil {
					return fmt.Errorf("%w: %q", err, args[0])
				}
				return updateConfig(func(cfg *config.File) error {
					cfg.DeletePrice(c)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set-grams [appetite] [grams]",
			Short: "Set how many grams each guest eats at an appetite level",
			Args:  cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				a, err := plan.ParseAppetite(args[0])
				if err != nil {
					return fmt.Errorf("%w: %q", err, args[0])
				}
				g, err := parseFloatArg(args[1:], "grams")
				if err != nil {
					return err
				}
				return updateConfig(func(cfg *config.File) error {
					return cfg.SetGramsPerPerson(a, g)
				})
			},
		},
		&cobra.Command{
			Use:   "set-appetite [appetite]",
			Short: "Set the default appetite level",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				a, err := plan.ParseAppetite(args[0])
				if err != nil {
					return fmt.Errorf("%w: %q", err, args[0])
				}
				return updateConfig(func(cfg *config.File) error {
					cfg.SetDefaultAppetite(a)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set-export [url] [format]",
			Short: "Set the default export location and format",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(_ *cobra.Command, args []string) error {
				format := ""
				if len(args) == 2 {
					f, err := export.ParseFormat(args[1])
					if err != nil {
						return fmt.Errorf("%w: %q", err, args[1])
					}
					format = string(f)
				}
				return updateConfig(func(cfg *config.File) error {
					cfg.SetExportURL(args[0])
					if format != "" {
						cfg.SetExportFormat(format)
					}
					return nil
				})
			},
		},
	)

	return cmd
}

func newConfigSetCommand(use, short string, set func(*config.File, meat.Category, float64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			c, err := meat.Parse(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q", err, args[0])
			}
			v, err := parseFloatArg(args[1:], "value")
			if err != nil {
				return err
			}
			return updateConfig(func(cfg *config.File) error {
				return set(cfg, c, v)
			})
		},
	}
}

func updateConfig(update func(*config.File) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := update(cfg); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	logrus.WithFields(cfg.LogrusFields()).Info("config saved")
	return nil
}
