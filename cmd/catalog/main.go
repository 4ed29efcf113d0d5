package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/GeorgeHahn/vector/catalog"
	"github.com/GeorgeHahn/vector/components"
	"github.com/GeorgeHahn/vector/loggers"
	"github.com/GeorgeHahn/vector/render"
	_ "github.com/GeorgeHahn/vector/render/all"
	"github.com/GeorgeHahn/vector/util"
	"github.com/GeorgeHahn/vector/version"
)

// Calling os.Exit() directly will not honor any defer'd statements.
// Instead, we will create an exit type and handler so that we may panic
// and handle any exit specific errors
type exit struct {
	RC int // The exit code
}

// exitHandler will handle a panic with type of exit (see above)
func exitHandler() {
	if err := recover(); err != nil {
		if exit, ok := err.(exit); ok {
			os.Exit(exit.RC)
		}

		// It's not actually an exit type, restore panic
		panic(err)
	}
}

// Requires that main (and every go-routine that this is used)
// have defer exitHandler() called first
func maybeFail(err error, errfmt string, params ...interface{}) {
	if err == nil {
		return
	}
	logger.WithError(err).Errorf(errfmt, params...)
	panic(exit{1})
}

var (
	metadataDirs []string
	doVersion    bool
	logLevel     string
	logFile      string
	logger       *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Component metadata catalog",
	Long:  `Catalog loads declarative component metadata documents, validates them against the shared registry, and renders documentation and schema artifacts. It can also serve the validated catalog over HTTP.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		//If no arguments passed, we should fallback to help
		cmd.HelpFunc()(cmd, args)
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if doVersion {
			fmt.Printf("%s\n", version.LongVersion())
			os.Exit(0)
		}
		if err := configureLogger(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load every metadata document and report all diagnostics",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cat, parseErrors := loadCatalog()
		diags := cat.Validate()
		for _, d := range diags {
			fmt.Fprintf(os.Stderr, "%s\n", d.Error())
		}
		if len(parseErrors) > 0 || len(diags) > 0 {
			logger.Errorf("catalog invalid: %d parse errors, %d diagnostics", len(parseErrors), len(diags))
			panic(exit{1})
		}
		logger.Infof("catalog valid: %d components", cat.Len())
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded component records",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cat, _ := loadCatalog()
		for _, meta := range cat.Components() {
			fmt.Printf("%-40s %-12s %s\n", meta.ID(), meta.Classes.Development, meta.Title)
		}
	},
}

var (
	renderFormat string
	outputDir    string
)

var renderCmd = &cobra.Command{
	Use:   "render [component-id...]",
	Short: "Render validated records into documentation or schema fragments",
	Long:  `Render projects validated component records into the requested format. With no arguments every record is rendered. Rendering refuses to run while the catalog has outstanding diagnostics.`,
	Run: func(cmd *cobra.Command, args []string) {
		cat, parseErrors := loadCatalog()
		diags := cat.Validate()
		if len(parseErrors) > 0 || len(diags) > 0 {
			for _, d := range diags {
				fmt.Fprintf(os.Stderr, "%s\n", d.Error())
			}
			maybeFail(fmt.Errorf("%d parse errors, %d diagnostics", len(parseErrors), len(diags)),
				"refusing to render an invalid catalog")
		}

		if outputDir != "" && !util.IsDir(outputDir) {
			maybeFail(os.MkdirAll(outputDir, 0755), "creating output directory %s", outputDir)
		}

		records := cat.Components()
		if len(args) > 0 {
			records = records[:0]
			for _, id := range args {
				meta, err := lookup(cat, id)
				maybeFail(err, "unknown component %s", id)
				records = append(records, meta)
			}
		}

		for _, meta := range records {
			out, err := render.Render(meta, renderFormat)
			maybeFail(err, "rendering %s", meta.ID())
			if outputDir == "" {
				fmt.Print(string(out))
				continue
			}
			target := filepath.Join(outputDir, meta.ID()+extensionFor(renderFormat))
			err = util.AtomicWriteFile(target, out, 0644)
			maybeFail(err, "writing %s", target)
			logger.Infof("wrote %s", target)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.LongVersion())
	},
}

// loadCatalog reads every metadata directory and reports parse errors without
// aborting: a malformed document only skips itself.
func loadCatalog() (*catalog.Catalog, []catalog.ParseError) {
	if len(metadataDirs) == 0 {
		maybeFail(fmt.Errorf("no metadata directories"), "provide at least one --metadata-dir")
	}
	for _, dir := range metadataDirs {
		if !util.FileExists(dir) {
			maybeFail(fmt.Errorf("path does not exist"), "invalid --metadata-dir %s", dir)
		}
	}
	cat, parseErrors := catalog.Load(logger, metadataDirs...)
	for _, perr := range parseErrors {
		fmt.Fprintf(os.Stderr, "%s\n", perr.Error())
	}
	return cat, parseErrors
}

// lookup resolves a "sinks.pulsar" style id against the catalog.
func lookup(cat *catalog.Catalog, id string) (*components.Metadata, error) {
	value, err := cat.Resolve("components." + id)
	if err != nil {
		return nil, err
	}
	record, ok := value.(*components.Metadata)
	if !ok {
		return nil, fmt.Errorf("%s does not name a component record", id)
	}
	return record, nil
}

func extensionFor(format string) string {
	switch format {
	case "json-schema":
		return ".schema.json"
	default:
		return ".md"
	}
}

func init() {
	logger = log.New()

	rootCmd.PersistentFlags().StringArrayVarP(&metadataDirs, "metadata-dir", "m", nil, "directory of metadata documents; repeat for multiple directories")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "verbosity of logs: [error, warn, info, debug, trace]")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "f", "", "path to log file, if unset logs are written to standard out")
	rootCmd.PersistentFlags().BoolVarP(&doVersion, "version", "v", false, "print version and exit")

	renderCmd.Flags().StringVarP(&renderFormat, "format", "F", "markdown", "output format: [markdown, json-schema]")
	renderCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for rendered artifacts, stdout when unset")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(versionCmd)
}

func configureLogger() error {
	level, err := log.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	manager := loggers.MakeLoggerManager(os.Stdout)
	newLogger, err := manager.MakeRootLogger(level, logFile)
	if err != nil {
		return err
	}
	logger = newLogger
	return nil
}

func main() {
	defer exitHandler()

	// Hidden command to generate docs in a given directory:
	// catalog generate-docs [path]
	if len(os.Args) == 3 && os.Args[1] == "generate-docs" {
		err := doc.GenMarkdownTree(rootCmd, os.Args[2])
		maybeFail(err, "generating docs")
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		panic(exit{1})
	}
}
