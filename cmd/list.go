package cmd

import (
	"github.com/TFMV/globwalk/internal/walk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// listCmd lists a single directory without descending.
var listCmd = &cobra.Command{
	Use:   "list [options] <dir>",
	Short: "List the entries of one directory",
	Long: `List the direct entries of a directory, optionally keeping only the names
that match one or more glob patterns. Entries are printed in the order the
filesystem reports them.

Examples:
  globwalk list /etc
  globwalk list /etc --glob="*.conf" --glob="*.cfg"
  globwalk list . --format="{stem}"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringSliceP("glob", "g", nil, "Keep only names matching this pattern (repeatable)")
	viper.BindPFlag("list.glob", listCmd.Flags().Lookup("glob"))

	addOutputFlags(listCmd, "list.")
}

func runList(cmd *cobra.Command, dir string) error {
	v := viper.GetViper()

	var (
		paths []string
		err   error
	)
	if globs := v.GetStringSlice("list.glob"); len(globs) > 0 {
		paths, err = walk.FindAny(dir, globs)
	} else {
		paths, err = walk.List(dir)
	}
	if err != nil {
		return err
	}
	return emit(cmd.OutOrStdout(), paths, loadOutputSettings(v, "list."))
}
