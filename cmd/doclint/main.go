package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"doclint/internal/lint"
)

// doclint lints markdown files offline: internal links, fenced code blocks,
// table-of-contents consistency and heading structure. It exits 1 when any
// error-severity issue is found and 2 on usage or I/O problems.

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fl := flag.NewFlagSet("doclint", flag.ContinueOnError)
	fl.SetOutput(stderr)
	format := fl.String("format", "text", "output format: text or json")
	rules := fl.String("rules", "", "comma-separated rule groups to disable")
	externals := fl.Bool("externals", false, "record external links as info issues")
	fl.Usage = func() {
		fmt.Fprintf(stderr, "usage: doclint [flags] <file-or-directory>...\n")
		fl.PrintDefaults()
	}
	if err := fl.Parse(args); err != nil {
		return 2
	}
	if fl.NArg() == 0 {
		fl.Usage()
		return 2
	}
	if *format != "text" && *format != "json" {
		fmt.Fprintf(stderr, "doclint: unknown format %q\n", *format)
		return 2
	}

	var opts []lint.Option
	if *rules != "" {
		opts = append(opts, lint.WithoutRules(strings.Split(*rules, ",")...))
	}
	if *externals {
		opts = append(opts, lint.WithExternalLinks())
	}
	engine := lint.NewEngine(opts...)

	set, err := collect(fl.Args())
	if err != nil {
		fmt.Fprintf(stderr, "doclint: %v\n", err)
		return 2
	}

	report := engine.Lint(set)

	switch *format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(stderr, "doclint: %v\n", err)
			return 2
		}
	default:
		printText(stdout, report)
	}

	errs, _, _ := report.Counts()
	if errs > 0 {
		return 1
	}
	return 0
}

// collect builds a file set from the argument paths. Directories are walked;
// markdown files are parsed, everything else is registered as an asset so
// links to it resolve. The set is closed only when every argument is a
// directory: a walked tree is complete, so unresolved file links are real
// findings, while an individually named file may link to siblings that were
// simply not passed.
func collect(paths []string) (*lint.FileSet, error) {
	set := lint.NewFileSet()
	added := 0
	complete := true

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			src, err := os.ReadFile(root)
			if err != nil {
				return nil, err
			}
			set.AddDocument(filepath.Base(root), src)
			added++
			complete = false
			continue
		}

		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if p != root && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor") {
					return filepath.SkipDir
				}
				return nil
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if isMarkdown(name) {
				src, err := os.ReadFile(p)
				if err != nil {
					return err
				}
				set.AddDocument(rel, src)
				added++
				return nil
			}
			set.AddAsset(rel)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if added == 0 {
		return nil, fmt.Errorf("no markdown files found")
	}
	if complete {
		set.Close()
	}
	return set, nil
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func printText(w io.Writer, report *lint.Report) {
	total := 0
	for _, f := range report.Files {
		for _, is := range f.Issues {
			total++
			loc := fmt.Sprintf("%s:%d", f.Path, is.Line)
			if is.Column > 0 {
				loc = fmt.Sprintf("%s:%d", loc, is.Column)
			}
			fmt.Fprintf(w, "%s: %s: %s (%s)\n", loc, is.Severity, is.Message, is.Rule)
		}
	}
	errs, warns, infos := report.Counts()
	fmt.Fprintf(w, "%d file(s) checked, %d issue(s): %d error(s), %d warning(s), %d info\n",
		len(report.Files), total, errs, warns, infos)
}
