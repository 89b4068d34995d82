package runner

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"sync"
	"syscall"

	"github.com/google/CSP-Validator/pkg/detector"
	"github.com/google/CSP-Validator/pkg/logger"
	"github.com/google/CSP-Validator/pkg/models"
	"github.com/google/CSP-Validator/pkg/output"
)

// Runner handles the execution of the scanning process. The detector itself
// is synchronous and pure; the runner only parallelizes across files.
type Runner struct {
	options *Options
	log     *logger.Logger
}

// NewRunner creates a new Runner instance
func NewRunner(options *Options) *Runner {
	return &Runner{
		options: options,
		log:     logger.NewLogger(options.VerboseLevel()),
	}
}

// newDetector builds a detector configured from the runner options.
func (r *Runner) newDetector() *detector.Detector {
	det := detector.NewDetector(r.log)
	det.Enabled = !r.options.Disabled
	det.SetChromeApps(r.options.ChromeApps)
	det.SetStrictJS(r.options.StrictJS)
	det.SetStrictHTML(r.options.StrictHTML)
	for _, id := range r.options.DisabledRuleIDs() {
		det.DisableRule(id)
	}
	return det
}

// Run scans every collected file and renders the findings. It returns the
// number of findings so the caller can pick an exit code.
func (r *Runner) Run() (int, error) {
	files, err := r.collectFiles()
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		r.log.V("nothing to scan")
		return 0, nil
	}

	// Root context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			if !r.options.Silent {
				fmt.Fprintln(os.Stderr, "\n[!] Received interrupt, shutting down...")
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	jobs := make(chan string)
	var wg sync.WaitGroup

	var (
		allFindings []models.Finding
		scanned     int
		mu          sync.Mutex
	)

	concurrency := r.options.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	// Worker pool
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Each worker gets its own detector to avoid shared state
			det := r.newDetector()

			for {
				select {
				case <-ctx.Done():
					return
				case path, ok := <-jobs:
					if !ok {
						return
					}
					findings, err := r.scanFile(det, path)
					if err != nil {
						if !r.options.Silent {
							r.log.Error("skipping %s: %v", path, err)
						}
						continue
					}
					mu.Lock()
					scanned++
					allFindings = append(allFindings, findings...)
					mu.Unlock()
				}
			}
		}()
	}

	for _, f := range files {
		select {
		case jobs <- f:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()

	// Stable output order regardless of worker scheduling
	sort.SliceStable(allFindings, func(a, b int) bool {
		if allFindings[a].Path != allFindings[b].Path {
			return allFindings[a].Path < allFindings[b].Path
		}
		if allFindings[a].Line != allFindings[b].Line {
			return allFindings[a].Line < allFindings[b].Line
		}
		return allFindings[a].ColumnStart < allFindings[b].ColumnStart
	})

	if err := r.render(allFindings); err != nil {
		return len(allFindings), err
	}

	if !r.options.Silent {
		fmt.Fprintf(os.Stderr, "[*] Scan complete: %d files scanned, %d issues found\n", scanned, len(allFindings))
	}

	return len(allFindings), ctx.Err()
}

// scanFile reads one file and runs the detector over it.
func (r *Runner) scanFile(det *detector.Detector, path string) ([]models.Finding, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ct := models.DetectContentType(path)
	if ct == models.ContentUnknown {
		r.log.V("unknown content type: %s", path)
	}

	doc := models.NewDocument(path, string(content), ct)
	if doc.Binary() {
		r.log.V("binary content: %s", path)
	}

	findings := det.Scan(doc)
	r.log.V("%s: %d findings", path, len(findings))
	return findings, nil
}

// collectFiles expands the configured paths into a flat file list. With no
// paths configured, paths are read from stdin one per line.
func (r *Runner) collectFiles() ([]string, error) {
	paths := r.options.Paths
	if len(paths) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				paths = append(paths, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading paths from stdin: %w", err)
		}
	}

	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		if !r.options.Recursive {
			return nil, fmt.Errorf("%s is a directory (use -r to scan recursively)", p)
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if models.DetectContentType(path) != models.ContentUnknown {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// render writes the findings in the configured format and destination.
func (r *Runner) render(findings []models.Finding) error {
	out := os.Stdout
	if r.options.OutputFile != "" {
		f, err := os.Create(r.options.OutputFile)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if r.options.Format == "sarif" {
		return output.WriteSARIF(out, findings)
	}

	for _, f := range findings {
		fmt.Fprintln(out, output.Format(f, r.options.Format))
	}
	return nil
}
