package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/celadon-tui/celadon"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [path...]",
		Short: "Check rule files for syntax and attribute errors",
		Long: `Check parses YAML and TOML rule files and reports selectors that do not
parse and attributes the named widget types do not accept. Directories are
searched for .yaml, .yml and .toml files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			if len(args) == 0 {
				args = []string{"."}
			}

			files, err := collectRuleFiles(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no rule files found")
			}
			logger.Debug("checking rule files", "count", len(files))

			var errorCount int
			for _, path := range files {
				logger.Debug("checking", "file", path)
				for _, err := range checkFile(path) {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					errorCount++
				}
			}
			if errorCount > 0 {
				return fmt.Errorf("%d error(s) found", errorCount)
			}
			logger.Info("rules passed checks", "files", len(files))
			return nil
		},
	}
}

// checkFile returns every problem found in the rule file at path.
func checkFile(path string) []error {
	rules, err := celadon.LoadRulesFile(path)
	if err != nil {
		return []error{err}
	}
	var errs []error
	for _, r := range rules {
		if err := celadon.CheckRule(r); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}
	return errs
}

func isRuleFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml":
		return true
	}
	return false
}

// collectRuleFiles expands directories into the rule files they contain.
// Files named directly are kept whatever their extension.
func collectRuleFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != path && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if isRuleFile(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
	}
	return files, nil
}
