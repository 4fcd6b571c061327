package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/TFMV/globwalk/internal/pathutil"
	"github.com/spf13/viper"
)

// outputSettings controls how found paths are printed.
type outputSettings struct {
	Format   string // Template with {} placeholders, see formatPath
	JSON     bool   // One JSON object per line
	Relative bool   // Print absolute paths relative to the filesystem root
	Output   string // File to write instead of stdout
}

func loadOutputSettings(v *viper.Viper, prefix string) outputSettings {
	return outputSettings{
		Format:   v.GetString(prefix + "format"),
		JSON:     v.GetBool(prefix + "json"),
		Relative: v.GetBool(prefix + "relative"),
		Output:   v.GetString(prefix + "output"),
	}
}

// pathRecord is the JSON shape of one found path.
type pathRecord struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Dir  string `json:"dir"`
	Stem string `json:"stem"`
}

// formatPath replaces placeholders in a template with parts of path.
func formatPath(template, path string) string {
	name := filepath.Base(path)
	dir := filepath.Dir(path)
	stem := pathutil.Basename(name)
	rel := pathutil.Relative(path)

	// One pass, so placeholder text inside the path is left alone.
	r := strings.NewReplacer(
		// Quoted versions
		`{""}`, strconv.Quote(path),
		`{"base"}`, strconv.Quote(name),
		`{"dir"}`, strconv.Quote(dir),
		`{"stem"}`, strconv.Quote(stem),
		`{"rel"}`, strconv.Quote(rel),
		// Basic placeholders
		"{}", path,
		"{base}", name,
		"{dir}", dir,
		"{stem}", stem,
		"{rel}", rel,
	)
	return r.Replace(template)
}

// writePaths prints paths to w according to out.
func writePaths(w io.Writer, paths []string, out outputSettings) error {
	enc := json.NewEncoder(w)
	for _, p := range paths {
		if out.Relative {
			p = pathutil.Relative(p)
		}

		var err error
		switch {
		case out.JSON:
			err = enc.Encode(pathRecord{
				Path: p,
				Name: filepath.Base(p),
				Dir:  filepath.Dir(p),
				Stem: pathutil.BasenameOf(p),
			})
		case out.Format != "":
			_, err = fmt.Fprintln(w, formatPath(out.Format, p))
		default:
			_, err = fmt.Fprintln(w, p)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// emit writes paths to the configured output file, creating its parent
// directories, or to stdout when no file is configured.
func emit(stdout io.Writer, paths []string, out outputSettings) error {
	if out.Output == "" {
		return writePaths(stdout, paths, out)
	}

	if err := pathutil.CreateParentDirectories(out.Output); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	f, err := os.Create(out.Output)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	if err := writePaths(f, paths, out); err != nil {
		f.Close()
		return fmt.Errorf("error writing %s: %w", out.Output, err)
	}
	return f.Close()
}
