// Command suitc compiles a tree of Suit template documents into their
// Python and JavaScript artifact files and bundles the client-side
// artifacts for deployment.
package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/suitlang/gosuit"
	"github.com/suitlang/gosuit/template"
)

// config is the suitc.yaml file layout. Flags override file values.
type config struct {
	// Source is the template tree root.
	Source string `yaml:"source"`
	// Output is where the artifact directories are created.
	Output string `yaml:"output"`
	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

var (
	cfg        config
	configPath string
	logger     *slog.Logger
)

const (
	pyDir  = "__py__"
	jsDir  = "__js__"
	cssDir = "__css__"
)

func main() {
	root := &cobra.Command{
		Use:           "suitc",
		Short:         "Compile and bundle Suit template documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "suitc.yaml", "config file path")
	root.PersistentFlags().StringVarP(&cfg.Source, "source", "s", ".", "template tree root")
	root.PersistentFlags().StringVarP(&cfg.Output, "output", "o", ".", "artifact output root")
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(compileCmd(), buildCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "suitc:", err)
		os.Exit(1)
	}
}

// loadConfig reads the yaml config when present, then lets set flags win.
func loadConfig(cmd *cobra.Command) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var fileCfg config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parse %s: %w", configPath, err)
	}
	if !cmd.Flags().Changed("source") && fileCfg.Source != "" {
		cfg.Source = fileCfg.Source
	}
	if !cmd.Flags().Changed("output") && fileCfg.Output != "" {
		cfg.Output = fileCfg.Output
	}
	if !cmd.Flags().Changed("verbose") {
		cfg.Verbose = fileCfg.Verbose
	}
	return nil
}

func compileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile [path]",
		Short: "Compile every template under the source tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := cfg.Source
			if len(args) == 1 {
				source = args[0]
			}
			return compileTree(source)
		},
	}
}

func buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Bundle compiled client-side artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := buildBundles(jsDir, "js"); err != nil {
				return err
			}
			return buildBundles(cssDir, "css")
		},
	}
}

// compileTree compiles every .html document under source. A failing
// document is reported and skipped so one bad template never blocks the
// rest of the tree; any failure still fails the run.
func compileTree(source string) error {
	if err := ensureArtifactDirs(); err != nil {
		return err
	}
	loader := template.NewFileSystemLoader(source)

	failed := 0
	err := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "__") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}

		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if err := compileOne(rel, loader); err != nil {
			logger.Error("compile failed", "template", rel, "error", err)
			failed++
			return nil
		}
		logger.Debug("compiled", "template", rel)
		return nil
	})
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d template(s) failed to compile", failed)
	}
	return nil
}

// compileOne compiles one document and writes its three artifact files.
func compileOne(rel string, loader gosuit.Loader) error {
	artifacts, err := gosuit.Compile(rel, loader)
	if err != nil {
		return err
	}

	base := strings.ReplaceAll(strings.TrimSuffix(rel, ".html"), "/", "_")
	if err := os.WriteFile(artifactPath(pyDir, base+".py"), []byte(pythonModule(base, artifacts.Python)), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(artifactPath(cssDir, base+".css"), []byte(artifacts.Style), 0o644); err != nil {
		return err
	}
	return os.WriteFile(artifactPath(jsDir, base+".js"), []byte(javascriptModule(artifacts.Name, artifacts.JavaScript, artifacts.Script)), 0o644)
}

// pythonModule wraps a compiled expression into an importable template
// class.
func pythonModule(className, compiled string) string {
	return "from suit.Suit import Suit, SuitRunTime, SuitNone, SuitFilters\n" +
		"class " + className + "(object):\n" +
		"\tdef execute(self, data={}):\n" +
		"\t\tself.data = data\n" +
		"\t\treturn (" + compiled + ")"
}

// javascriptModule wraps a compiled expression into a client-side
// template registration, carrying the document's script block as the
// registration initializer.
func javascriptModule(name, compiled, script string) string {
	init := strings.TrimSpace(script)
	if init == "" {
		init = "null"
	}
	return fmt.Sprintf("suit.SuitApi.addTemplate(%q, function(data) {data = data || {}; return %s}, %s);\n",
		name, compiled, init)
}

// buildBundles concatenates the per-template artifacts of one kind into
// per-catalog bundles plus the overall all.<ext> library.
func buildBundles(dir, ext string) error {
	full := filepath.Join(cfg.Output, dir)
	entries, err := os.ReadDir(full)
	if err != nil {
		return err
	}

	var names []string
	catalogs := map[string][]string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, "."+ext) || strings.HasPrefix(name, "all.") {
			continue
		}
		names = append(names, name)
		if i := strings.Index(name, "_"); i > 0 {
			catalog := name[:i]
			catalogs[catalog] = append(catalogs[catalog], name)
		}
	}
	sort.Strings(names)

	if err := concat(full, names, filepath.Join(full, "all."+ext)); err != nil {
		return err
	}
	for catalog, members := range catalogs {
		sort.Strings(members)
		out := filepath.Join(full, "all."+catalog+"."+ext)
		if err := concat(full, members, out); err != nil {
			return err
		}
	}
	logger.Info("bundled", "kind", ext, "templates", len(names))
	return nil
}

// concat joins the named files, in order, into one output file.
func concat(dir string, names []string, out string) error {
	var b strings.Builder
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		b.Write(data)
	}
	return os.WriteFile(out, []byte(b.String()), 0o644)
}

// ensureArtifactDirs creates the artifact directories, including the
// package marker the python artifacts need to be importable.
func ensureArtifactDirs() error {
	for _, dir := range []string{pyDir, jsDir, cssDir} {
		if err := os.MkdirAll(filepath.Join(cfg.Output, dir), 0o755); err != nil {
			return err
		}
	}
	initFile := artifactPath(pyDir, "__init__.py")
	if _, err := os.Stat(initFile); os.IsNotExist(err) {
		return os.WriteFile(initFile, nil, 0o644)
	}
	return nil
}

func artifactPath(dir, name string) string {
	return filepath.Join(cfg.Output, dir, name)
}
