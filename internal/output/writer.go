package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/quantmind-br/gitget/internal/domain"
	"github.com/quantmind-br/gitget/internal/utils"
)

// FilePerm is the permission of every file the mirror writes
const FilePerm os.FileMode = 0644

// Progress receives one tick per written file
type Progress interface {
	Add(n int) error
}

// Writer streams remote blobs into local files
type Writer struct {
	fs       afero.Fs
	source   domain.SourceControl
	logger   *utils.Logger
	progress Progress
	dryRun   bool
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	Fs       afero.Fs
	Source   domain.SourceControl
	Logger   *utils.Logger
	Progress Progress
	DryRun   bool
}

// NewWriter creates a new blob writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}

	return &Writer{
		fs:       opts.Fs,
		source:   opts.Source,
		logger:   opts.Logger,
		progress: opts.Progress,
		dryRun:   opts.DryRun,
	}
}

// Fs returns the filesystem the writer writes to
func (w *Writer) Fs() afero.Fs {
	return w.fs
}

// DryRun reports whether writes are skipped
func (w *Writer) DryRun() bool {
	return w.dryRun
}

// WriteBlob copies the content of remotePath at version into localPath, creating
// or truncating it. It returns once every byte is written and the file is closed;
// the remote stream and the file are closed on every path.
func (w *Writer) WriteBlob(ctx context.Context, repoID, remotePath string, version domain.VersionDescriptor, localPath string) (written int64, err error) {
	if w.dryRun {
		w.logger.Info().Str("remote", remotePath).Str("local", localPath).Msg("Would write file")
		return 0, nil
	}

	stream, err := w.source.GetFileContent(ctx, repoID, remotePath, version)
	if err != nil {
		return 0, domain.NewRemoteCallError("get file content", remotePath, err)
	}
	defer stream.Close()

	file, err := w.fs.OpenFile(localPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, FilePerm)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", localPath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", localPath, closeErr)
		}
	}()

	written, err = io.Copy(file, &remoteReader{r: stream, path: remotePath})
	if err != nil {
		if domain.IsRemoteCall(err) {
			return written, err
		}
		return written, fmt.Errorf("failed to write %s: %w", localPath, err)
	}

	w.logger.Info().Str("remote", remotePath).Str("local", localPath).Int64("bytes", written).Msg("Wrote file")
	if w.progress != nil {
		_ = w.progress.Add(1)
	}
	return written, nil
}

// remoteReader tags read failures of the content stream as remote call failures,
// so they are told apart from local write failures
type remoteReader struct {
	r    io.Reader
	path string
}

func (r *remoteReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, domain.NewRemoteCallError("read file content", r.path, err)
	}
	return n, err
}
