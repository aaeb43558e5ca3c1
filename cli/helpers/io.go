package helpers

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beehive/jxunxo/pkg/logger"
	"github.com/spf13/afero"
)

// InputFs is the filesystem --file paths are read from.
var InputFs = afero.NewOsFs()

// ReadInput collects the shorthand to convert. Positional args win and are
// joined with commas; otherwise the file is read, with "" or "-" meaning
// stdin. Trailing line breaks are dropped.
func ReadInput(ctx context.Context, args []string, file string, stdin io.Reader) (string, error) {
	log := logger.FromContext(ctx)
	if len(args) > 0 {
		if file != "" {
			return "", NewCliError(CodeIO, "give shorthand as arguments or --file, not both")
		}
		return strings.Join(args, ","), nil
	}
	var (
		data []byte
		err  error
	)
	switch file {
	case "", "-":
		log.Debug("reading from stdin")
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err = io.ReadAll(stdin)
		if err != nil {
			return "", NewCliError(CodeIO, "failed to read stdin", err.Error()).WithCause(err)
		}
	default:
		log.Debug("reading from file", "file", file)
		data, err = ReadFile(InputFs, file)
		if err != nil {
			return "", err
		}
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// ReadFile reads a file from fsys with enhanced error handling
func ReadFile(fsys afero.Fs, path string) ([]byte, error) {
	if path == "" {
		return nil, NewCliError(CodeIO, "file path cannot be empty")
	}
	if !FileExists(fsys, path) {
		return nil, NewCliError(CodeIO, fmt.Sprintf("file not found: %s", path))
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, NewCliError(CodeIO, fmt.Sprintf("failed to read file: %s", path), err.Error()).WithCause(err)
	}
	return data, nil
}

// FileExists reports whether path names an existing regular file
func FileExists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}
