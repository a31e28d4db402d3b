package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"uriopen/config"
	"uriopen/editor"
)

var (
	version = "dev"

	verbosity  int
	logFile    string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "uriopen [dir] [files...]",
	Short: "View files and open the URIs inside them",
	Long: `uriopen shows files in a terminal viewer. Right-click a URI, web address
or path (or press F10 with the caret on it) to browse to it, open it in a new
tab or copy it.`,
	SilenceUsage: true,
	RunE:         runEditor,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&logFile, "log-file", "", "log to this file")
	flags.StringVar(&configFile, "config", "", "settings file (default ~/.config/uriopen/settings.toml or settings.json)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// configureLogging sends logs to --log-file, or to fallback when that is
// empty. An empty fallback means stderr.
func configureLogging(fallback string) {
	path := logFile
	if path == "" {
		path = fallback
	}
	if path == "" {
		commonlog.Configure(verbosity, nil)
		return
	}
	commonlog.Configure(verbosity, &path)
}

// loadConfig returns the settings and the file they came from.
func loadConfig() (*config.Config, string, error) {
	path := configFile
	if path == "" {
		path = config.ConfigPath()
	}
	if path == "" {
		return config.Default(), "", nil
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	// The screen belongs to the viewer, so logs never go to stderr.
	configureLogging(filepath.Join(os.TempDir(), "uriopen.log"))
	log := commonlog.GetLogger("uriopen.cli")

	cfg, path, err := loadConfig()
	if err != nil {
		log.Warningf("using default settings: %s", err)
		cfg = config.Default()
	}

	files := args
	if len(args) > 0 {
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			if err := os.Chdir(args[0]); err != nil {
				return fmt.Errorf("cannot change to directory %s: %w", args[0], err)
			}
			files = args[1:]
		}
	}

	return editor.New(cfg, editor.WithConfigPath(path)).Run(files)
}
