package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"horse.fit/subplot/internal/cli"
	"horse.fit/subplot/internal/language"
	"horse.fit/subplot/internal/translation"
)

func runSelfTest(args []string) int {
	fs := flag.NewFlagSet("selftest", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 5*time.Minute, "Command timeout")
	lang := fs.String("lang", "", "Target language override")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	rt, err := buildRuntime(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	targetLang := language.NormalizeTag(rt.cfg.TargetLanguage)
	if override := language.NormalizeTag(*lang); override != "" {
		targetLang = override
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	results := translation.SelfTest(ctx, rt.specs, rt.compat, rt.google, targetLang, rt.logger)
	fmt.Println(renderSelfTestTable(results))

	for _, result := range results {
		if result.Status != "success" {
			return 1
		}
	}
	return 0
}

func renderSelfTestTable(results []translation.SelfTestResult) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Provider", "Status", "Result"})

	for _, result := range results {
		detail := result.Translation
		if result.Status != "success" {
			detail = shorten(result.Error, 60)
		}
		tw.AppendRow(table.Row{result.Provider, result.Status, detail})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
