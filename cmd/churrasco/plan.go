package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/churrasco-tools/churrasco/pkg/config"
	"github.com/churrasco-tools/churrasco/pkg/export"
	"github.com/churrasco-tools/churrasco/pkg/meat"
	"github.com/churrasco-tools/churrasco/pkg/plan"
	"github.com/churrasco-tools/churrasco/pkg/wizard"
)

const lockSuffix = ":lock"

type planOptions struct {
	guests         string
	appetite       string
	meats          []string
	prices         []string
	shares         []string
	locks          []string
	normalize      bool
	output         string
	exportURL      string
	exportFormat   string
	rememberPrices bool
}

func NewPlanCommand() *cobra.Command {
	o := &planOptions{}

	cmd := &cobra.Command{
		Use:     "plan",
		Short:   "Plan a barbecue in one go",
		GroupID: gPlanning,
		Long: `Plan a barbecue in one go, without prompts.

The flags follow the same steps as the interactive wizard: guests, appetite
and meats first, then prices, then shares. Shares start from the default
weights of the selected meats. Every --share is applied in order, and the
other unlocked meats absorb the difference proportionally. Append ":lock" to
lock a share right after setting it, so that later --share flags leave it
alone. --lock locks a meat at its current share after all --share flags.

Examples:
  churrasco plan --guests 12 --meat bovina --meat frango --price bovina=59.90 --price frango=18
  churrasco plan --guests 8 --meat bovina,linguica,frango --share bovina=60:lock --share frango=10 -o json
  churrasco plan --guests 20 --appetite pesado --meat bovina --export ./out/`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			s, err := buildPlan(cfg, o)
			if err != nil {
				return err
			}

			if o.rememberPrices {
				for c, p := range s.Prices() {
					if err := cfg.SetPrice(c, p); err != nil {
						return fmt.Errorf("failed to remember price: %w", err)
					}
				}
				if err := cfg.Save(); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
				logrus.Infof("prices saved to %s", cfg.Path())
			}

			summary := s.Summary()
			if err := writeSummary(cmd.OutOrStdout(), summary, o.output); err != nil {
				return err
			}

			if o.exportURL == "" {
				return nil
			}
			return exportSummary(cmd.Context(), cfg, summary, o.exportURL, o.exportFormat)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.guests, "guests", "g", "", "number of guests")
	f.StringVarP(&o.appetite, "appetite", "a", "", "appetite level (leve, medio, pesado); defaults to the preset")
	f.StringSliceVarP(&o.meats, "meat", "m", nil, "meats to serve, repeatable or comma separated")
	f.StringArrayVarP(&o.prices, "price", "p", nil, "price per kilo as meat=value; remembered prices are used when omitted")
	f.StringArrayVarP(&o.shares, "share", "s", nil, "share as meat=percent, optionally suffixed with :lock")
	f.StringArrayVar(&o.locks, "lock", nil, "lock a meat at its current share")
	f.BoolVar(&o.normalize, "normalize", false, "rescale the shares to exactly 100% before checking them")
	f.StringVarP(&o.output, "output", "o", "text", "output format (text, json, yaml)")
	f.StringVar(&o.exportURL, "export", "", "also export the result to this file, directory (trailing /) or URL")
	f.StringVar(&o.exportFormat, "export-format", "", "export format (text, json, yaml, png); guessed from --export or taken from the preset")
	f.BoolVar(&o.rememberPrices, "remember-prices", false, "save the prices used in the preset file")

	_ = cmd.MarkFlagRequired("guests")
	_ = cmd.MarkFlagRequired("meat")

	return cmd
}

// buildPlan drives a wizard session through every step with the values of o.
func buildPlan(cfg config.Config, o *planOptions) (*wizard.Session, error) {
	s := wizard.NewSession(wizard.OptionsFromConfig(cfg))

	if err := s.SetGuests(o.guests); err != nil {
		return nil, err
	}
	if o.appetite != "" {
		a, err := plan.ParseAppetite(o.appetite)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, o.appetite)
		}
		if err := s.SetAppetite(a); err != nil {
			return nil, err
		}
	}
	meats, err := meat.ParseList(o.meats)
	if err != nil {
		return nil, err
	}
	if err := s.SetSelection(meats); err != nil {
		return nil, err
	}
	if err := s.Advance(); err != nil {
		return nil, err
	}

	for _, arg := range o.prices {
		c, v, err := parseMeatValue(arg)
		if err != nil {
			return nil, err
		}
		if err := s.SetPrice(c, v); err != nil {
			return nil, fmt.Errorf("price of %s: %w", c, err)
		}
	}
	if err := s.Advance(); err != nil {
		return nil, err
	}

	for _, arg := range o.shares {
		c, v, err := parseMeatValue(arg)
		if err != nil {
			return nil, err
		}
		lock := strings.HasSuffix(v, lockSuffix)
		v = strings.TrimSuffix(v, lockSuffix)

		value, err := strconv.ParseFloat(strings.Replace(strings.TrimSuffix(v, "%"), ",", ".", 1), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid share %q: %v", arg, err)
		}
		if s.Allocation().IsSelected(c) && s.Allocation().Locked(c) {
			logrus.WithField("meat", c).Warn("share is locked, ignoring new value")
		}
		if err := s.SetShare(c, value); err != nil {
			return nil, err
		}
		if lock && !s.Allocation().Locked(c) {
			if err := s.ToggleLock(c); err != nil {
				return nil, err
			}
		}
	}
	for _, name := range o.locks {
		c, err := meat.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, name)
		}
		if s.IsSelected(c) && s.Allocation().Locked(c) {
			continue
		}
		if err := s.ToggleLock(c); err != nil {
			return nil, err
		}
	}
	if o.normalize {
		s.Normalize()
	}
	if err := s.Advance(); err != nil {
		return nil, err
	}

	return s, nil
}

func writeSummary(w io.Writer, s plan.Summary, output string) error {
	f, err := export.ParseFormat(output)
	if err != nil {
		return fmt.Errorf("invalid output %q: %w", output, err)
	}

	switch f {
	case export.FormatText:
		export.WriteText(w, s, !color.NoColor)
		return nil
	case export.FormatPNG:
		return fmt.Errorf("png cannot be printed, use --export instead")
	}

	b, err := export.Render(s, f)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func resolveExportFormat(cfg config.Config, URL, format string) (export.Format, error) {
	if format != "" {
		return export.ParseFormat(format)
	}
	if f, ok := export.FormatFromPath(URL); ok {
		return f, nil
	}
	return export.ParseFormat(cfg.ExportFormat())
}

func exportSummary(ctx context.Context, cfg config.Config, s plan.Summary, URL, format string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	f, err := resolveExportFormat(cfg, URL, format)
	if err != nil {
		return fmt.Errorf("invalid export format: %w", err)
	}

	target, err := export.NewExporter(nil).Export(ctx, s, f, URL)
	if err != nil {
		return fmt.Errorf("failed to export plan: %w", err)
	}

	logrus.Infof("plan exported to %s", target)
	return nil
}
