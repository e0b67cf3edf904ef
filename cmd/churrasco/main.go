package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/churrasco-tools/churrasco/pkg/config"
	"github.com/churrasco-tools/churrasco/pkg/meat"
	"github.com/churrasco-tools/churrasco/pkg/plan"
	"github.com/churrasco-tools/churrasco/pkg/wizard"
)

var (
	logLevel   = "info"
	configPath = config.DefaultPath()
)

var (
	gPlanning     = "Planning:"
	gPresets      = "Presets:"
	commandGroups = []string{
		gPlanning,
		gPresets,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	switch {
	case errors.Is(err, wizard.ErrSharesUnbalanced):
		fmt.Fprintln(os.Stderr, "\nThe meat shares must add up to 100%.")
		fmt.Fprintln(os.Stderr, "  - Adjust the --share values so that the unlocked meats can absorb the rest")
		fmt.Fprintln(os.Stderr, "  - Or pass --normalize to rescale every share proportionally")
	case errors.Is(err, wizard.ErrMissingPrice):
		fmt.Fprintln(os.Stderr, "\nEvery selected meat needs a price per kilo.")
		fmt.Fprintln(os.Stderr, "  - Pass --price meat=value for each one")
		fmt.Fprintln(os.Stderr, "  - Or remember it with 'churrasco config set-price'")
	case errors.Is(err, meat.ErrUnknownCategory):
		fmt.Fprintln(os.Stderr, "\nRun 'churrasco meats' to list the available meats.")
	case errors.Is(err, plan.ErrUnknownAppetite):
		fmt.Fprintln(os.Stderr, "\nAppetite must be one of: leve, medio, pesado.")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "churrasco",
		Short: "churrasco plans how much meat to buy for a barbecue",
		Long: `churrasco plans how much meat to buy for a barbecue.

Tell it how many guests are coming, how hungry they are, which meats you want
and what they cost per kilo. Then split the total between the meats, locking
the shares you are happy with, and get the weight and cost of each one.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "preset file path (.json, .yaml or .yml)")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewVersionCommand(),
		NewMeatsCommand(),
		NewPlanCommand(),
		NewWizardCommand(),
		NewConfigCommand(),
	)

	return cmd
}
