package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/churrasco-tools/churrasco/pkg/allocation"
	"github.com/churrasco-tools/churrasco/pkg/config"
	"github.com/churrasco-tools/churrasco/pkg/export"
	"github.com/churrasco-tools/churrasco/pkg/meat"
	"github.com/churrasco-tools/churrasco/pkg/plan"
	"github.com/churrasco-tools/churrasco/pkg/wizard"
)

// errQuit ends the wizard without an error.
var errQuit = errors.New("quit")

func NewWizardCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "wizard",
		Short:   "Plan a barbecue step by step",
		GroupID: gPlanning,
		Long: `Plan a barbecue step by step.

The wizard asks for the guests, appetite and meats, then the price of each
meat, then lets you split the total between the meats. Type "back" at any
prompt to return to the previous step and "quit" to leave.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			w := newWizardRunner(cmd.InOrStdin(), cmd.OutOrStdout(), cfg)
			err = w.run(cmd.Context())
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		},
	}
}

type wizardRunner struct {
	in  *bufio.Scanner
	out io.Writer
	cfg config.Config
	s   *wizard.Session
}

func newWizardRunner(in io.Reader, out io.Writer, cfg config.Config) *wizardRunner {
	return &wizardRunner{
		in:  bufio.NewScanner(in),
		out: out,
		cfg: cfg,
		s:   wizard.NewSession(wizard.OptionsFromConfig(cfg)),
	}
}

func (w *wizardRunner) run(ctx context.Context) error {
	for {
		var err error
		switch w.s.Step() {
		case wizard.StepGuests:
			err = w.guestsStep()
		case wizard.StepPrices:
			err = w.pricesStep()
		case wizard.StepShares:
			err = w.sharesStep()
		case wizard.StepResult:
			err = w.resultStep(ctx)
		}
		if err != nil {
			return err
		}
	}
}

// ask prints prompt and reads one line. "quit" and "back" are handled by
// the caller through the returned text.
func (w *wizardRunner) ask(prompt string) (string, error) {
	fmt.Fprint(w.out, prompt)
	if !w.in.Scan() {
		if err := w.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		fmt.Fprintln(w.out)
		return "", errQuit
	}
	line := strings.TrimSpace(w.in.Text())
	if strings.EqualFold(line, "quit") || strings.EqualFold(line, "exit") {
		return "", errQuit
	}
	return line, nil
}

func (w *wizardRunner) warn(err error) {
	fmt.Fprintln(w.out, color.New(color.FgRed).Sprintf("  %v", err))
}

func (w *wizardRunner) heading(step wizard.Step, title string) {
	fmt.Fprintln(w.out)
	fmt.Fprintln(w.out, bold("[%d/%d] %s", int(step), len(wizard.Steps()), title))
}

func (w *wizardRunner) guestsStep() error {
	w.heading(wizard.StepGuests, "Guests and meats")

	for {
		current := ""
		if w.s.Guests() > 0 {
			current = fmt.Sprintf(" [%d]", w.s.Guests())
		}
		line, err := w.ask(fmt.Sprintf("How many guests?%s ", current))
		if err != nil {
			return err
		}
		if line == "" && w.s.Guests() > 0 {
			break
		}
		if err := w.s.SetGuests(line); err != nil {
			w.warn(err)
			continue
		}
		if w.s.Guests() > 0 {
			break
		}
	}

	for {
		line, err := w.ask(fmt.Sprintf("Appetite (leve, medio, pesado) [%s]: ", w.s.Appetite()))
		if err != nil {
			return err
		}
		if line == "" {
			break
		}
		a, err := plan.ParseAppetite(line)
		if err != nil {
			w.warn(err)
			continue
		}
		if err := w.s.SetAppetite(a); err != nil {
			w.warn(err)
			continue
		}
		break
	}

	catalog := w.s.Catalog()
	for i, c := range catalog {
		fmt.Fprintf(w.out, "  %d) %s\n", i+1, c.DisplayName())
	}
	for {
		current := ""
		if sel := w.s.Selected(); len(sel) > 0 {
			names := make([]string, len(sel))
			for i, c := range sel {
				names[i] = string(c)
			}
			current = fmt.Sprintf(" [%s]", strings.Join(names, ","))
		}
		line, err := w.ask(fmt.Sprintf("Which meats? (numbers or names, comma separated)%s ", current))
		if err != nil {
			return err
		}
		if line == "" && len(w.s.Selected()) > 0 {
			break
		}
		picked, err := parsePicks(line, catalog)
		if err != nil {
			w.warn(err)
			continue
		}
		if err := w.s.SetSelection(picked); err != nil {
			w.warn(err)
			continue
		}
		break
	}

	if err := w.s.Advance(); err != nil {
		w.warn(err)
	}
	return nil
}

func (w *wizardRunner) pricesStep() error {
	w.heading(wizard.StepPrices, "Price per kilo")

	for _, c := range w.s.Selected() {
		for {
			current := ""
			if p, ok := w.s.Price(c); ok {
				current = fmt.Sprintf(" [%s]", strconv.FormatFloat(p, 'f', -1, 64))
			}
			line, err := w.ask(fmt.Sprintf("%s (%s)%s: ", c.DisplayName(), export.Currency, current))
			if err != nil {
				return err
			}
			if strings.EqualFold(line, "back") {
				w.s.Back()
				return nil
			}
			if line == "" {
				if _, ok := w.s.Price(c); ok {
					break
				}
				continue
			}
			if err := w.s.SetPrice(c, line); err != nil {
				w.warn(err)
				continue
			}
			break
		}
	}

	if err := w.s.Advance(); err != nil {
		w.warn(err)
	}
	return nil
}

func (w *wizardRunner) printShares() {
	a := w.s.Allocation()
	s := w.s.Summary()
	for i, item := range a.Items() {
		line := s.Lines[i]
		fmt.Fprintf(w.out, "  %d) %-13s %6.1f%%  %-6s  %.3f kg  %s %.2f\n",
			i+1, item.Category.DisplayName(), item.Share, lock2Text(item.Locked), line.Kg, export.Currency, line.Cost)
	}
	fmt.Fprintf(w.out, "  Total: %s\n", total2Text(a.Total(), a.Balanced(allocation.DefaultTolerance)))
}

func (w *wizardRunner) sharesStep() error {
	w.heading(wizard.StepShares, "Split the meat (total 100%)")
	fmt.Fprintln(w.out, `  Commands: "<meat> <percent>", "lock <meat>", "unlock <meat>", "normalize", "next", "back"`)

	for {
		w.printShares()
		line, err := w.ask("> ")
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "back":
			w.s.Back()
			return nil
		case "next", "done":
			if err := w.s.Advance(); err != nil {
				w.warn(err)
				continue
			}
			return nil
		case "normalize":
			w.s.Normalize()
		case "lock", "unlock":
			if len(fields) < 2 {
				w.warn(fmt.Errorf("usage: %s <meat>", strings.ToLower(fields[0])))
				continue
			}
			c, err := parsePick(strings.Join(fields[1:], " "), w.s.Selected())
			if err != nil {
				w.warn(err)
				continue
			}
			want := strings.ToLower(fields[0]) == "lock"
			if w.s.IsSelected(c) && w.s.Allocation().Locked(c) == want {
				state := "unlocked"
				if want {
					state = "locked"
				}
				w.warn(fmt.Errorf("%s is already %s", c.DisplayName(), state))
				continue
			}
			if err := w.s.ToggleLock(c); err != nil {
				w.warn(err)
			}
		default:
			if len(fields) < 2 {
				w.warn(fmt.Errorf("usage: <meat> <percent>"))
				continue
			}
			pct := fields[len(fields)-1]
			c, err := parsePick(strings.Join(fields[:len(fields)-1], " "), w.s.Selected())
			if err != nil {
				w.warn(err)
				continue
			}
			v, err := strconv.ParseFloat(strings.Replace(strings.TrimSuffix(pct, "%"), ",", ".", 1), 64)
			if err != nil {
				w.warn(fmt.Errorf("invalid percent %q", pct))
				continue
			}
			if w.s.IsSelected(c) && w.s.Allocation().Locked(c) {
				w.warn(fmt.Errorf("%s is locked, unlock it first", c.DisplayName()))
				continue
			}
			if err := w.s.SetShare(c, v); err != nil {
				w.warn(err)
			}
		}
	}
}

func (w *wizardRunner) resultStep(ctx context.Context) error {
	w.heading(wizard.StepResult, "Result")
	summary := w.s.Summary()
	export.WriteText(w.out, summary, !color.NoColor)

	for {
		line, err := w.ask(`Type "export [file|dir/|url] [format]", "back", "restart" or "quit": `)
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "back":
			w.s.Back()
			return nil
		case "restart":
			w.s.Reset()
			return nil
		case "export":
			URL := w.cfg.ExportURL()
			format := ""
			if len(fields) > 1 {
				URL = fields[1]
			}
			if len(fields) > 2 {
				format = fields[2]
			}
			// Export failures are reported and the session is kept.
			if err := exportSummary(ctx, w.cfg, summary, URL, format); err != nil {
				logrus.WithError(err).Error("export failed")
				w.warn(err)
				continue
			}
			fmt.Fprintln(w.out, "  Exported.")
		default:
			w.warn(fmt.Errorf("unknown command %q", fields[0]))
		}
	}
}

// parsePicks resolves a comma separated list of catalog numbers (1-based)
// or meat names.
func parsePicks(line string, catalog []meat.Category) ([]meat.Category, error) {
	var out []meat.Category
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, err := parsePick(part, catalog)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, wizard.ErrNoCategories
	}
	return out, nil
}

func parsePick(s string, among []meat.Category) (meat.Category, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(among) {
			return "", fmt.Errorf("%w: %d", meat.ErrUnknownCategory, n)
		}
		return among[n-1], nil
	}
	c, err := meat.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, s)
	}
	return c, nil
}
