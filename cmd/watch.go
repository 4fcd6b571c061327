package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TFMV/globwalk/internal/walk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [options] <root>",
	Short: "Re-run a find whenever the tree changes",
	Long: `Walk a directory tree like the root command, then keep watching every
directory that was listed. Whenever an entry is created, removed or renamed the
whole tree is walked again and the complete result is printed (or written to
--output) again.

Examples:
  globwalk watch ~/notes --glob="*.md"
  globwalk watch . -g "*.go" --output=build/sources.txt --debounce=500ms
  globwalk watch /srv -g "*.conf" --timeout=1h`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	addWalkFlags(watchCmd, "watch.")
	addOutputFlags(watchCmd, "watch.")

	watchCmd.Flags().Duration("debounce", walk.DefaultDebounce, "Quiet period before walking again")
	watchCmd.Flags().Duration("timeout", 0, "Duration to watch before exiting (e.g., 1h, 30m)")
	viper.BindPFlag("watch.debounce", watchCmd.Flags().Lookup("debounce"))
	viper.BindPFlag("watch.timeout", watchCmd.Flags().Lookup("timeout"))
}

func runWatch(cmd *cobra.Command, root string) error {
	v := viper.GetViper()

	settings, err := loadWalkSettings(v, "watch.")
	if err != nil {
		return err
	}
	out := loadOutputSettings(v, "watch.")

	logger := newLogger(v)
	defer logger.Sync()
	settings.Opts.Logger = logger

	wopts := walk.WatchOptions{
		Debounce: v.GetDuration("watch.debounce"),
		Timeout:  v.GetDuration("watch.timeout"),
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "Watching %s for changes...\n", root)
	fmt.Fprintln(stderr, "Press Ctrl+C to exit.")

	return walk.Watch(cmd.Context(), root, settings.Globs, settings.Opts, wopts,
		func(ctx context.Context, result walk.WatchResult) error {
			if result.Error != nil {
				// Only a permission failure under --on-access-denied=fail ends the watch.
				if errors.Is(result.Error, walk.ErrAccessDenied) {
					return result.Error
				}
				logger.Warn("walk failed, waiting for the next change", zap.Error(result.Error))
				return nil
			}
			fmt.Fprintf(stderr, "[%s] %s %s: %d matches\n",
				time.Now().Format(time.TimeOnly), result.Event, result.Trigger, len(result.Paths))
			return emit(cmd.OutOrStdout(), result.Paths, out)
		})
}
