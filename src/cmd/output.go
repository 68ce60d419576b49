package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/warp-contracts/loader/src/utils/bundlr"
	"github.com/warp-contracts/loader/src/utils/status"
)

// Output selects how command records are written to stdout
type Output string

const (
	// Just the essential value, one per line
	OutputQuiet Output = "quiet"

	// Human readable, the default
	OutputVerbose Output = "verbose"

	// Indented JSON
	OutputJson Output = "json"

	// Single line JSON
	OutputJsonCompact Output = "json-compact"
)

var outputFormat string

func validateOutputFormat() (err error) {
	switch Output(outputFormat) {
	case OutputQuiet, OutputVerbose, OutputJson, OutputJsonCompact:
	default:
		err = ErrUnknownOutputFormat
	}
	return
}

// printResult writes the final record of a command. The quiet and
// verbose renderings are built lazily, v serves the JSON modes.
func printResult(v interface{}, quiet func() string, verbose func() string) (err error) {
	switch Output(outputFormat) {
	case OutputJson:
		var data []byte
		data, err = json.MarshalIndent(v, "", "  ")
		if err != nil {
			return
		}
		fmt.Println(string(data))
	case OutputJsonCompact:
		var data []byte
		data, err = json.Marshal(v)
		if err != nil {
			return
		}
		fmt.Println(string(data))
	case OutputQuiet:
		out := quiet()
		if out != "" {
			fmt.Println(out)
		}
	default:
		out := verbose()
		if out != "" {
			fmt.Print(out)
		}
	}
	return
}

// streamLine reports progress of a running command. The JSON modes
// stay silent here and print the collected record at the end.
func streamLine(quiet, verbose string) {
	switch Output(outputFormat) {
	case OutputQuiet:
		if quiet != "" {
			fmt.Println(quiet)
		}
	case OutputVerbose:
		if verbose != "" {
			fmt.Println(verbose)
		}
	}
}

// expandGlobs resolves the given patterns into a sorted list of paths.
// A plain path that matches nothing is kept, the pipeline reports it
// as missing. A wildcard that matches nothing contributes nothing.
func expandGlobs(patterns []string) (paths []string, err error) {
	for _, pattern := range patterns {
		var matches []string
		matches, err = filepath.Glob(pattern)
		if err != nil {
			return
		}
		if len(matches) == 0 {
			if !strings.ContainsAny(pattern, "*?[") {
				paths = append(paths, pattern)
			}
			continue
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		err = ErrNoFilesMatched
	}
	return
}

// parseTags turns name:value pairs from the command line into tags
func parseTags(raw []string) (tags []bundlr.Tag, err error) {
	for _, pair := range raw {
		name, value, found := strings.Cut(pair, ":")
		if !found || name == "" {
			err = fmt.Errorf("%w: %s", ErrInvalidTag, pair)
			return
		}
		tags = append(tags, bundlr.Tag{Name: name, Value: value})
	}
	return
}

func parseStatuses(raw []string) (codes []status.Code, err error) {
	for _, s := range raw {
		var code status.Code
		code, err = status.ParseCode(s)
		if err != nil {
			return
		}
		codes = append(codes, code)
	}
	return
}

// openStore opens the status journal configured through --log-dir or the
// configuration file
func openStore() (*status.Store, error) {
	if conf.Uploader.LogDir == "" {
		return nil, ErrMissingLogDir
	}
	return status.NewStore(conf.Uploader.LogDir)
}
