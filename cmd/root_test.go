package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/TFMV/globwalk/internal/walk"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWalkSettings(t *testing.T) {
	v := viper.New()
	v.Set("find.glob", []string{"*.md", "*.gradle"})
	v.Set("find.max-depth", 3)
	v.Set("find.follow-symlinks", true)
	v.Set("find.on-access-denied", "terminate")
	v.Set("find.access-denied-log", "warn")

	s, err := loadWalkSettings(v, "find.")
	require.NoError(t, err)
	assert.Equal(t, []string{"*.md", "*.gradle"}, s.Globs)
	assert.Equal(t, walk.Options{
		MaxDepth:        3,
		FollowSymlinks:  true,
		AccessDenied:    walk.ActionTerminate,
		AccessDeniedLog: walk.LogWarn,
	}, s.Opts)
}

func TestLoadWalkSettingsDefaults(t *testing.T) {
	s, err := loadWalkSettings(viper.New(), "find.")
	require.NoError(t, err)
	assert.Equal(t, []string{"*"}, s.Globs)
	assert.Equal(t, walk.DefaultOptions(), s.Opts)
}

func TestLoadWalkSettingsInvalid(t *testing.T) {
	v := viper.New()
	v.Set("find.on-access-denied", "explode")
	_, err := loadWalkSettings(v, "find.")
	assert.Error(t, err)

	v = viper.New()
	v.Set("find.access-denied-log", "trace")
	_, err = loadWalkSettings(v, "find.")
	assert.Error(t, err)
}

func TestRootCommand(t *testing.T) {
	root := t.TempDir()
	for _, f := range []string{"a.md", "sub/b.md", "sub/c.txt", "sub/deeper/d.md"} {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("test"), 0644))
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{root, "--glob", "*.md", "--max-depth", "1", "--format", "{base}", "--silent"})
	require.NoError(t, rootCmd.Execute())

	got := strings.Fields(out.String())
	sort.Strings(got)
	assert.Equal(t, []string{"a.md", "b.md"}, got)
}
