package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/CSP-Validator/pkg/config"
	"github.com/google/CSP-Validator/pkg/runner"
)

func main() {
	options := runner.DefaultOptions()

	// Define flags with both short and long names
	flag.BoolVar(&options.Recursive, "r", false, "Scan directories recursively")
	flag.BoolVar(&options.Recursive, "recursive", false, "Scan directories recursively")

	flag.StringVar(&options.Format, "o", config.DefaultFormat, "Output format: plain, human, json, sarif")
	flag.StringVar(&options.Format, "output", config.DefaultFormat, "Output format: plain, human, json, sarif")

	flag.StringVar(&options.OutputFile, "w", "", "Write findings to file instead of stdout")
	flag.StringVar(&options.OutputFile, "write", "", "Write findings to file instead of stdout")

	flag.IntVar(&options.Concurrency, "c", config.DefaultConcurrency, "Number of concurrent workers")
	flag.IntVar(&options.Concurrency, "concurrency", config.DefaultConcurrency, "Number of concurrent workers")

	flag.BoolVar(&options.Verbose, "v", false, "Verbose output")
	flag.BoolVar(&options.Verbose, "verbose", false, "Verbose output")

	flag.BoolVar(&options.VeryVerbose, "vv", false, "Very verbose output (debugging)")

	flag.BoolVar(&options.Silent, "s", false, "Silent mode (suppress summary and errors)")
	flag.BoolVar(&options.Silent, "silent", false, "Silent mode (suppress summary and errors)")

	flag.BoolVar(&options.ChromeApps, "chrome-apps", false, "Enable Chrome-Apps-only rules (remote link hrefs, javascript: urls)")
	flag.BoolVar(&options.StrictJS, "strict-js", false, "Confirm JavaScript findings with a real parser")
	flag.BoolVar(&options.StrictHTML, "strict-html", false, "Confirm HTML findings with a tokenizer")
	flag.StringVar(&options.DisableRules, "disable", "", "Comma-separated rule IDs to skip (e.g. INLINE_SCRIPT)")
	flag.BoolVar(&options.Disabled, "disabled", false, "Disable the detector entirely (scans report nothing)")

	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	// Custom Usage function
	flag.Usage = func() {
		h := `cspscan - Content Security Policy issue scanner for JS, HTML and CSS

USAGE:
  cspscan [flags] [path ...]

  With no paths, file paths are read from stdin, one per line.

SCANNING:
  -r,  --recursive           Scan directories recursively
  -c,  --concurrency int     Number of concurrent workers (default 8)
       --disable string      Comma-separated rule IDs to skip
       --disabled            Disable the detector entirely
       --chrome-apps         Enable Chrome-Apps-only rules
       --strict-js           Confirm JavaScript findings with a real parser
       --strict-html         Confirm HTML findings with a tokenizer

OUTPUT:
  -o,  --output string       Output format: plain, human, json, sarif (default "plain")
  -w,  --write string        Write findings to file instead of stdout
  -v,  --verbose             Verbose output
       -vv                   Very verbose output (debugging)
  -s,  --silent              Silent mode (suppress summary and errors)

EXAMPLES:
  cspscan index.html app.js styles.css
  cspscan -r -o sarif -w findings.sarif ./src
  find . -name "*.html" | cspscan -o json
  cspscan --chrome-apps --strict-js -r ./app
`
		fmt.Fprint(os.Stderr, h)
	}

	flag.Parse()

	if showVersion {
		fmt.Println("cspscan " + config.Version)
		return
	}

	options.Paths = flag.Args()

	count, err := runner.NewRunner(options).Run()
	if err != nil {
		if !options.Silent {
			fmt.Fprintf(os.Stderr, "[!] %v\n", err)
		}
		os.Exit(2)
	}
	if count > 0 {
		os.Exit(1)
	}
}
