package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/churrasco-tools/churrasco/pkg/config"
	"github.com/churrasco-tools/churrasco/pkg/meat"
)

func loadConfig() (*config.File, error) {
	cfg, err := config.NewFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logrus.WithFields(cfg.LogrusFields()).Debug("config loaded")
	return cfg, nil
}

// parseMeatValue splits "meat=value" into a category and the raw value.
func parseMeatValue(arg string) (meat.Category, string, error) {
	k, v, ok := strings.Cut(arg, "=")
	if !ok {
		return "", "", fmt.Errorf("invalid %q, expected meat=value", arg)
	}
	c, err := meat.Parse(k)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", err, k)
	}
	return c, strings.TrimSpace(v), nil
}

func parseFloatArg(args []string, valueName string) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("invalid number of arguments")
	}

	value, err := strconv.ParseFloat(strings.Replace(args[0], ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", valueName, err)
	}

	return value, nil
}

func lock2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgYellow).Sprint("locked")
	}
	return color.New(color.Faint).Sprint("free")
}

func total2Text(total float64, balanced bool) string {
	if balanced {
		return color.New(color.Bold, color.FgGreen).Sprintf("%.1f%%", total)
	}
	return color.New(color.Bold, color.FgRed).Sprintf("%.1f%%", total)
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
