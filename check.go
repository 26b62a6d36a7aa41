package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/sirkon/pyrevu/internal/pyparse"
	"github.com/sirkon/pyrevu/internal/pysrc"
	"github.com/sirkon/pyrevu/internal/review"
)

var (
	flagJobs  int
	flagCodes bool
)

var checkCmd = &cobra.Command{
	Use:   "check [path ...]",
	Short: "review Python files and report style and safety issues",
	Long: `Check reviews every given Python file and reports issues found in it.
Directory arguments are walked recursively for *.py files. Without
arguments the current directory is checked.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		files, err := collectFiles(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no Python files found")
		}

		setupColor(cfg.Color)
		if !checkFiles(files, cfg, os.Stdout) {
			return errIssuesFound
		}

		return nil
	},
}

func init() {
	checkCmd.Flags().IntVar(&flagJobs, "jobs", 0, "parallel file processing limit, 0 means the CPU count")
	checkCmd.Flags().BoolVar(&flagCodes, "codes", false, "prefix every issue with its PYR rule code")
}

// resolveConfig loads the config file and applies CLI overrides on top.
func resolveConfig(cmd *cobra.Command) (*Config, error) {
	path := flagConfig
	explicit := path != ""
	if !explicit {
		path = defaultConfigName
	}

	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = flagJobs
	}
	if cmd.Flags().Changed("codes") {
		cfg.Codes = flagCodes
	}
	if cmd.Root().PersistentFlags().Changed("color") {
		cfg.Color = flagColor
	}

	return cfg, nil
}

// collectFiles expands arguments into a sorted list of Python files.
// Plain file arguments are taken as given, directories are walked.
func collectFiles(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}

		if !info.IsDir() {
			add(arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// The requested root walks even when its own name is hidden.
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".py") {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// setupColor translates the color mode into the global fatih/color switch.
func setupColor(mode ColorMode) {
	switch mode {
	case ColorModeOn:
		color.NoColor = false
	case ColorModeOff:
		color.NoColor = true
	default:
		color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
	}
}

type fileResult struct {
	path   string
	issues []review.Issue
	err    error
}

// checkFiles reviews every file with bounded parallelism and prints
// reports in the input order. It returns true when every file passed.
func checkFiles(files []string, cfg *Config, w io.Writer) bool {
	results := make([]fileResult, len(files))

	var eg errgroup.Group
	eg.SetLimit(cfg.jobs())
	for i, path := range files {
		eg.Go(func() error {
			results[i] = reviewFile(path)
			return nil
		})
	}
	_ = eg.Wait()

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	ok := true
	for _, res := range results {
		issues := cfg.filterIssues(res.issues)
		switch {
		case res.err != nil:
			ok = false
			header := "Failed to check"
			var perr *pyparse.ParseError
			if errors.As(res.err, &perr) {
				header = "Failed to parse"
			}
			_, _ = yellow.Fprintf(w, "%s %s:", header, res.path)
			_, _ = fmt.Fprintf(w, " %s\n", res.err)

		case len(issues) == 0:
			_, _ = green.Fprintf(w, "%s passed all checks.\n", res.path)

		default:
			ok = false
			_, _ = red.Fprintf(w, "Issues found in %s:\n", res.path)
			for _, issue := range issues {
				if cfg.Codes {
					_, _ = fmt.Fprintf(w, "  %s: %s\n", issue.Rule.Code(), issue.Message)
				} else {
					_, _ = fmt.Fprintf(w, "  %s\n", issue.Message)
				}
			}
		}
	}

	return ok
}

// reviewFile parses a single file and runs the review passes on it.
func reviewFile(path string) fileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileResult{path: path, err: err}
	}

	src := pysrc.New(path, string(data))
	tree, err := pyparse.Parse(src)
	if err != nil {
		return fileResult{path: path, err: err}
	}

	return fileResult{
		path:   path,
		issues: review.Run(tree, src),
	}
}
