package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/fatih/color"
)

func parseIntArg(args []string, valueName string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("invalid number of arguments")
	}

	value, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", valueName, err)
	}

	return value, nil
}

func parseFloatArg(arg string, valueName string) (float64, error) {
	value, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", valueName, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid %s: must be a finite number", valueName)
	}
	if value < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative, got %v", valueName, value)
	}

	return value, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}
