// Command authlens prints sender-authenticity reports for raw messages.
//
// Usage:
//
//	authlens [-config file.yaml] [-strict-trust] [-psl curated|icann]
//	         [-format text|json|msgpack] [-mbox] [-v] paths...
//
// Each path is an .eml file, or with -mbox an mbox archive holding any
// number of messages. "-" reads standard input.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/emersion/go-mbox"

	"github.com/synqronlabs/authlens"
	"github.com/synqronlabs/authlens/authres"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run returns the process exit code: 0 on success, 1 if any input could not
// be read, 2 on usage errors. Suspicious messages are not errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("authlens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath  = fs.String("config", "", "YAML configuration file")
		strictTrust = fs.Bool("strict-trust", false, "Ignore Authentication-Results not written by the delivering relay")
		psl         = fs.String("psl", "", "Public suffix list: curated or icann")
		format      = fs.String("format", "text", "Output format: text, json or msgpack")
		isMbox      = fs.Bool("mbox", false, "Treat inputs as mbox archives")
		verbose     = fs.Bool("v", false, "Log trust decisions")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fc := fileConfig{}
	if *configPath != "" {
		var err error
		if fc, err = loadConfig(*configPath); err != nil {
			logger.Error("loading config", "path", *configPath, "error", err)
			return 2
		}
	}
	if *psl != "" {
		fc.PSL = *psl
	}
	if *strictTrust {
		fc.Trust = authres.TrustStrict
	}
	config, err := fc.apply(authlens.Config{Logger: logger})
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return 2
	}

	out, err := newWriter(*format, stdout)
	if err != nil {
		logger.Error("invalid flag", "error", err)
		return 2
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	analyzer := authlens.NewAnalyzer(config)
	code := 0
	for _, path := range paths {
		if err := analyzePath(analyzer, out, path, *isMbox, stdin); err != nil {
			logger.Error("reading input", "path", path, "error", err)
			code = 1
		}
	}
	return code
}

func analyzePath(analyzer *authlens.Analyzer, out writer, path string, isMbox bool, stdin io.Reader) error {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	if !isMbox {
		report, err := analyzer.AnalyzeReader(r)
		if err != nil {
			return err
		}
		return out.write(path, report)
	}

	reader := mbox.NewReader(r)
	for i := 0; ; i++ {
		mr, err := reader.NextMessage()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		report, err := analyzer.AnalyzeReader(mr)
		if err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		if err := out.write(fmt.Sprintf("%s#%d", path, i), report); err != nil {
			return err
		}
	}
}
