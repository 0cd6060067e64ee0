package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"horse.fit/subplot/internal/language"
)

func runLanguages(args []string) int {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	for _, option := range language.Options() {
		fmt.Printf("%-8s %s (%s)\n", option.Code, option.Label, option.Native)
	}
	return 0
}
