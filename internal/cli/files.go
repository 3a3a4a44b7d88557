package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/calumari/jdoc"
)

const stdinName = "<stdin>"

type document struct {
	path   string
	size   int
	member jdoc.Member
	err    error
}

// parseAll parses every path, or stdin when paths is empty. At most
// opts.Concurrency files are read at the same time. The result has one entry
// per input in input order.
func (a *app) parseAll(ctx context.Context, paths []string) []document {
	if len(paths) == 0 {
		return []document{a.parse(stdinName, func() ([]byte, error) { return io.ReadAll(a.stdin) })}
	}

	docs := make([]document, len(paths))
	var eg errgroup.Group
	eg.SetLimit(a.opts.Concurrency)
	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				docs[i] = document{path: path, err: err}
				return nil
			}
			docs[i] = a.parse(path, func() ([]byte, error) { return os.ReadFile(path) })
			return nil
		})
	}
	_ = eg.Wait() // failures are kept per document
	return docs
}

func (a *app) parse(path string, read func() ([]byte, error)) document {
	data, err := read()
	if err != nil {
		return document{path: path, err: fmt.Errorf("read %s: %w", path, err)}
	}
	m, err := jdoc.Parse(string(data), a.opts.ReaderOptions()...)
	a.logger.Debug("parsed", zap.String("file", path), zap.Int("bytes", len(data)), zap.Bool("ok", err == nil))
	return document{path: path, size: len(data), member: m, err: err}
}

// writeFile replaces the content of path and keeps its permissions.
func writeFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, info.Mode().Perm())
}
