package index

import (
	"context"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/questcanvas/pkg/errors"
)

// maxParallelReads bounds concurrent file reads during a scan.
const maxParallelReads = 8

// IsDocument reports whether name has a quest document extension.
func IsDocument(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}

// Scan reads every quest document below root. Sources are returned in lexical
// path order and named by their path within fsys.
func Scan(ctx context.Context, fsys fs.FS, root string) ([]Source, error) {
	var names []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsDocument(p) {
			names = append(names, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "scan %s", root)
	}

	out := make([]Source, len(names))
	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallelReads)
	for i, name := range names {
		eg.Go(func() error {
			if err := ectx.Err(); err != nil {
				return err
			}
			b, err := fs.ReadFile(fsys, name)
			if err != nil {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", name)
			}
			out[i] = Source{Name: name, Text: string(b)}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
