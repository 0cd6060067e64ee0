package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"horse.fit/subplot/internal/cli"
	"horse.fit/subplot/internal/language"
	"horse.fit/subplot/internal/metadata"
	"horse.fit/subplot/internal/translation"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Minute, "Overall command timeout (bounds the fallback backoff loop)")
	lang := fs.String("lang", "", "Target language override (for example: zh-cn, en)")
	text := fs.String("text", "", "Translate this text instead of a metadata file")
	names := fs.String("names", "", "Comma-separated performer names to protect (with --text)")
	out := fs.String("out", "", "Write the enriched metadata here instead of overwriting the input")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	inline := strings.TrimSpace(*text) != ""
	if !inline && fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "translate requires one metadata file argument, or --text")
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

	rt.chain.SetProgress(consoleProgress(os.Stdout))

	if inline {
		return translateInline(ctx, rt, targetLang, *text, splitNames(*names))
	}
	return translateFile(ctx, rt, targetLang, fs.Arg(0), strings.TrimSpace(*out))
}

func translateInline(ctx context.Context, rt *runtime, targetLang, text string, names []string) int {
	result, err := rt.chain.Translate(ctx, translation.Request{
		Text:           text,
		TargetLang:     targetLang,
		ProtectedNames: names,
		Field:          "text",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Translation failed: %v\n", err)
		return 1
	}
	fmt.Printf("%s\n", result.Text)
	fmt.Fprintf(os.Stderr, "provider=%s lang=%s\n", result.Provider, targetLang)
	return 0
}

func translateFile(ctx context.Context, rt *runtime, targetLang, path, outPath string) int {
	movie, err := metadata.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	opts := rt.orchestratorOptions()
	opts.TargetLang = targetLang

	orchestrator := translation.NewOrchestrator(rt.chain, opts, rt.logger)
	reports := orchestrator.TranslateMovie(ctx, movie)

	for _, report := range reports {
		switch report.Status {
		case translation.FieldTranslated:
			fmt.Printf("%s: translated (%s)\n", report.Field, report.Provider)
		case translation.FieldSkipped:
			fmt.Printf("%s: already in target language, skipped\n", report.Field)
		default:
			fmt.Printf("%s: failed, keeping original (%s)\n", report.Field, shorten(report.Error, 120))
		}
	}

	if outPath == "" {
		outPath = path
	}
	if err := movie.Save(outPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("translate file=%s lang=%s fields=%d source_lang=%s\n", outPath, targetLang, len(reports), movie.SourceLang)
	return 0
}

func splitNames(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}
