// Package walker mirrors a remote directory tree breadth-first, one listing level
// at a time.
package walker

import (
	"context"
	"fmt"
	"strings"

	"github.com/quantmind-br/gitget/internal/domain"
	"github.com/quantmind-br/gitget/internal/output"
	"github.com/quantmind-br/gitget/internal/utils"
)

// Job describes one directory mirror
type Job struct {
	RepoID  string
	Version domain.VersionDescriptor
	// Root is the remote path whose listing seeds the walk
	Root string
	// Items is the listing of Root, including its self-entry
	Items     []domain.RemoteItem
	LocalRoot string
	BaseLen   int
}

// Stats summarizes a finished walk
type Stats struct {
	// DirectoriesListed includes the root, whose listing seeds the walk
	DirectoriesListed int
	FilesWritten      int
	BytesWritten      int64
}

// Walker expands folders through the remote listing API and writes every blob
type Walker struct {
	source domain.SourceControl
	writer *output.Writer
	logger *utils.Logger
}

// Options contains options for the walker
type Options struct {
	Source domain.SourceControl
	Writer *output.Writer
	Logger *utils.Logger
}

// New creates a new walker
func New(opts Options) *Walker {
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}
	return &Walker{
		source: opts.Source,
		writer: opts.Writer,
		logger: opts.Logger,
	}
}

// Walk mirrors job.Root into job.LocalRoot. Folders are expanded in FIFO order and
// each folder's files are written in listing order before the next folder is
// dequeued. The first error aborts the walk.
func (w *Walker) Walk(ctx context.Context, job Job) (Stats, error) {
	var queue Queue
	stats := Stats{DirectoriesListed: 1}

	if err := w.processLevel(ctx, job, job.Root, job.Items, &queue, &stats); err != nil {
		return stats, err
	}

	for {
		folder, ok := queue.Pop()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		w.logger.Debug().Str("path", folder.Path).Int("pending", queue.Len()).Msg("Dequeued")

		localDir := utils.MapLocalPath(folder.Path, job.LocalRoot, job.BaseLen)
		if err := w.ensureDir(localDir); err != nil {
			return stats, err
		}

		items, err := w.source.ListItems(ctx, job.RepoID, folder.Path, job.Version)
		if err != nil {
			return stats, domain.NewRemoteCallError("list items", folder.Path, err)
		}
		stats.DirectoriesListed++

		if err := w.processLevel(ctx, job, folder.Path, items, &queue, &stats); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// processLevel enqueues the subfolders of one listing and writes its files.
// The entry for self is the listed folder itself and is skipped. Paths compare
// case-insensitively since some servers echo the requested spelling back in the
// canonical case; a child path is always longer than its parent so it never matches.
func (w *Walker) processLevel(ctx context.Context, job Job, self string, items []domain.RemoteItem, queue *Queue, stats *Stats) error {
	selfPath := domain.NormalizeRemoteItemPath(self)

	for _, item := range items {
		if strings.EqualFold(domain.NormalizeRemoteItemPath(item.Path), selfPath) {
			continue
		}

		if item.IsTree() {
			w.logger.Debug().Str("path", item.Path).Msg("Enqueueing")
			queue.Push(item)
			continue
		}

		localPath := utils.MapLocalPath(item.Path, job.LocalRoot, job.BaseLen)
		n, err := w.writer.WriteBlob(ctx, job.RepoID, item.Path, job.Version, localPath)
		if err != nil {
			return err
		}
		stats.FilesWritten++
		stats.BytesWritten += n
	}
	return nil
}

func (w *Walker) ensureDir(path string) error {
	if w.writer.DryRun() {
		w.logger.Info().Str("local", path).Msg("Would create directory")
		return nil
	}
	if err := utils.EnsureDir(w.writer.Fs(), path); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
