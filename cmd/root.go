package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/TFMV/globwalk/internal/walk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "globwalk [options] <root>",
	Short: "Find files matching glob patterns in every directory of a tree",
	Long: `globwalk walks a directory tree depth first and prints every entry whose
name matches one of the given glob patterns, checking the patterns in every
directory it visits.

Unreadable directories are handled by an access-denied policy: the severity
they are logged at and whether the walk skips them, stops with what it found
so far, or fails.

Examples:
  globwalk ~/src --glob="*.md"
  globwalk ~/src -g "*.md" -g "*.gradle" --max-depth=3
  globwalk / -g "*.log" --on-access-denied=terminate --access-denied-log=warn
  globwalk . -g "*.tar.gz" --format="{stem} in {dir}"
  globwalk /data -g "*.csv" --json --output=reports/csv.jsonl`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFind(cmd, args[0])
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is $HOME/.globwalk.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("silent", false, "Disable all logging except errors")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("silent", rootCmd.PersistentFlags().Lookup("silent"))

	addWalkFlags(rootCmd, "find.")
	addOutputFlags(rootCmd, "find.")
}

// addWalkFlags registers the traversal flags on cmd and binds them to viper
// keys under prefix.
func addWalkFlags(cmd *cobra.Command, prefix string) {
	flags := cmd.Flags()
	flags.StringSliceP("glob", "g", []string{"*"}, "Glob pattern matched in every directory (repeatable, any may match)")
	flags.UintP("max-depth", "d", 0, "Deepest directory level to list, the root being 0 (0 for unlimited)")
	flags.Bool("follow-symlinks", false, "Descend into symbolic links to directories")
	flags.String("on-access-denied", "skip", "Action on unreadable directories (skip|terminate|fail)")
	flags.String("access-denied-log", "debug", "Log level for unreadable directories (warn|debug|info)")

	for _, name := range []string{"glob", "max-depth", "follow-symlinks", "on-access-denied", "access-denied-log"} {
		viper.BindPFlag(prefix+name, flags.Lookup(name))
	}
}

// addOutputFlags registers the output flags on cmd and binds them to viper
// keys under prefix.
func addOutputFlags(cmd *cobra.Command, prefix string) {
	flags := cmd.Flags()
	flags.String("format", "", "Output template ({}, {base}, {dir}, {stem}, {rel}; quoted as {\"\"}, {\"base\"}, ...)")
	flags.Bool("json", false, "Print one JSON object per path")
	flags.Bool("relative", false, "Print absolute paths relative to the filesystem root")
	flags.StringP("output", "o", "", "Write results to this file, creating parent directories")

	for _, name := range []string{"format", "json", "relative", "output"} {
		viper.BindPFlag(prefix+name, flags.Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err == nil {
			// Search config in home directory with name ".globwalk" (without extension).
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".globwalk")
	}

	viper.SetEnvPrefix("GLOBWALK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// walkSettings is the traversal configuration resolved from flags, config
// file and environment.
type walkSettings struct {
	Globs []string
	Opts  walk.Options
}

func loadWalkSettings(v *viper.Viper, prefix string) (walkSettings, error) {
	action, err := walk.ParseAccessDeniedAction(v.GetString(prefix + "on-access-denied"))
	if err != nil {
		return walkSettings{}, err
	}
	logLevel, err := walk.ParseAccessDeniedLogLevel(v.GetString(prefix + "access-denied-log"))
	if err != nil {
		return walkSettings{}, err
	}

	globs := v.GetStringSlice(prefix + "glob")
	if len(globs) == 0 {
		globs = []string{"*"}
	}

	return walkSettings{
		Globs: globs,
		Opts: walk.Options{
			MaxDepth:        v.GetUint(prefix + "max-depth"),
			FollowSymlinks:  v.GetBool(prefix + "follow-symlinks"),
			AccessDenied:    action,
			AccessDeniedLog: logLevel,
		},
	}, nil
}

// newLogger builds the command's logger from the verbosity flags.
func newLogger(v *viper.Viper) *zap.Logger {
	switch {
	case v.GetBool("verbose"):
		return walk.NewLogger(walk.LogLevelDebug)
	case v.GetBool("silent"):
		return walk.NewLogger(walk.LogLevelError)
	default:
		return walk.NewLogger(walk.LogLevelInfo)
	}
}

func runFind(cmd *cobra.Command, root string) error {
	v := viper.GetViper()

	settings, err := loadWalkSettings(v, "find.")
	if err != nil {
		return err
	}

	logger := newLogger(v)
	defer logger.Sync()
	settings.Opts.Logger = logger

	paths, err := walk.FindRecursiveWithOptions(cmd.Context(), root, settings.Globs, settings.Opts)
	if err != nil {
		return err
	}
	return emit(cmd.OutOrStdout(), paths, loadOutputSettings(v, "find."))
}
