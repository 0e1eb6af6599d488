package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/quantmind-br/gitget/internal/domain"
	"github.com/quantmind-br/gitget/internal/manifest"
	"github.com/quantmind-br/gitget/internal/output"
	"github.com/quantmind-br/gitget/internal/refs"
	"github.com/quantmind-br/gitget/internal/utils"
	"github.com/quantmind-br/gitget/internal/walker"
)

// Mode is the shape of a finished mirror
type Mode string

const (
	ModeSingleFile Mode = "single_file"
	ModeDirectory  Mode = "directory"
)

// Request describes one mirror
type Request struct {
	// Project is used to pick the repository when RepoID is empty
	Project    string
	RepoID     string
	RemotePath string
	// LocalPath defaults to the default working directory, then "."
	LocalPath string
	Ref       string
}

// Result summarizes a successful mirror
type Result struct {
	Mode        Mode
	Repository  string
	Destination string
	Version     domain.VersionDescriptor
	Stats       walker.Stats
}

// Orchestrator mirrors remote paths to local disk
type Orchestrator struct {
	source     domain.SourceControl
	fs         afero.Fs
	logger     *utils.Logger
	resolver   *refs.Resolver
	writer     *output.Writer
	walker     *walker.Walker
	defaultDir string
	dryRun     bool
}

// Options contains options for creating an orchestrator
type Options struct {
	Source domain.SourceControl
	Fs     afero.Fs
	Logger *utils.Logger
	// Progress ticks once per written file
	Progress output.Progress
	// DefaultWorkingDirectory is the destination when a request has no local path
	DefaultWorkingDirectory string
	DryRun                  bool
}

// NewOrchestrator creates a new orchestrator with the given options
func NewOrchestrator(opts Options) (*Orchestrator, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("source is required")
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}

	writer := output.NewWriter(output.WriterOptions{
		Fs:       opts.Fs,
		Source:   opts.Source,
		Logger:   opts.Logger.WithComponent("writer"),
		Progress: opts.Progress,
		DryRun:   opts.DryRun,
	})

	return &Orchestrator{
		source:   opts.Source,
		fs:       opts.Fs,
		logger:   opts.Logger,
		resolver: refs.NewResolver(opts.Source),
		writer:   writer,
		walker: walker.New(walker.Options{
			Source: opts.Source,
			Writer: writer,
			Logger: opts.Logger.WithComponent("walker"),
		}),
		defaultDir: opts.DefaultWorkingDirectory,
		dryRun:     opts.DryRun,
	}, nil
}

// Run mirrors req.RemotePath to req.LocalPath. A remote file is written as a
// single file; a remote folder is mirrored recursively. Already written files are
// left in place on failure.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	startTime := time.Now()

	repoID, repoName, err := o.resolveRepository(ctx, req)
	if err != nil {
		return nil, err
	}
	logger := o.logger.WithRepository(repoName)

	localPath := req.LocalPath
	if localPath == "" {
		localPath = o.defaultDir
	}
	if localPath == "" {
		localPath = "."
	}

	version, err := o.resolver.Resolve(ctx, repoID, req.Ref)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", req.RemotePath).
		Str("local", localPath).
		Str("version", version.String()).
		Msg("Listing remote path")

	remotePath := domain.NormalizeRemoteItemPath(req.RemotePath)
	items, err := o.source.ListItems(ctx, repoID, remotePath, version)
	if err != nil {
		return nil, domain.NewRemoteCallError("list items", req.RemotePath, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s was not found", domain.ErrPathNotFound, req.RemotePath)
	}

	result := &Result{
		Repository: repoName,
		Version:    version,
	}

	if len(items) == 1 && !items[0].IsTree() {
		result.Mode = ModeSingleFile
		var n int64
		result.Destination, n, err = o.mirrorFile(ctx, repoID, items[0], localPath, version)
		if err != nil {
			return nil, err
		}
		result.Stats.FilesWritten = 1
		result.Stats.BytesWritten = n
	} else {
		result.Mode = ModeDirectory
		result.Destination = localPath
		result.Stats, err = o.mirrorFolder(ctx, repoID, remotePath, items, localPath, version)
		if err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("mode", string(result.Mode)).
		Str("destination", result.Destination).
		Int("files", result.Stats.FilesWritten).
		Int64("bytes", result.Stats.BytesWritten).
		Dur("duration", time.Since(startTime)).
		Msg("Mirror completed")

	return result, nil
}

func (o *Orchestrator) resolveRepository(ctx context.Context, req Request) (id, name string, err error) {
	if req.RepoID != "" {
		return req.RepoID, req.RepoID, nil
	}

	repo, err := SelectRepository(ctx, o.source, req.Project)
	if err != nil {
		return "", "", err
	}
	o.logger.Info().Str("repository", repo.Name).Msgf("Using repository %s.", repo.Name)
	return repo.ID, repo.Name, nil
}

// mirrorFile writes one remote file. A destination that is an existing directory,
// or a missing path ending in a separator, receives the file under its remote name.
func (o *Orchestrator) mirrorFile(ctx context.Context, repoID string, item domain.RemoteItem, localPath string, version domain.VersionDescriptor) (string, int64, error) {
	state, err := utils.StatPath(o.fs, localPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to stat %s: %w", localPath, err)
	}

	dest := localPath
	if state == utils.PathIsDir || (state == utils.PathMissing && utils.HasTrailingSeparator(localPath)) {
		dest = filepath.Join(localPath, item.Name())
	}

	if !o.dryRun {
		if err := utils.EnsureParentDir(o.fs, dest); err != nil {
			return "", 0, fmt.Errorf("failed to create directory for %s: %w", dest, err)
		}
	}

	n, err := o.writer.WriteBlob(ctx, repoID, item.Path, version, dest)
	if err != nil {
		return "", 0, err
	}
	return dest, n, nil
}

// listedRoot returns the folder's own path as the server spelled it in its
// self-entry, falling back to the requested path
func listedRoot(items []domain.RemoteItem, remotePath string) string {
	for _, item := range items {
		p := domain.NormalizeRemoteItemPath(item.Path)
		if item.IsTree() && strings.EqualFold(p, remotePath) {
			return p
		}
	}
	return remotePath
}

func (o *Orchestrator) mirrorFolder(ctx context.Context, repoID, remotePath string, items []domain.RemoteItem, localPath string, version domain.VersionDescriptor) (walker.Stats, error) {
	state, err := utils.StatPath(o.fs, localPath)
	if err != nil {
		return walker.Stats{}, fmt.Errorf("failed to stat %s: %w", localPath, err)
	}
	if state == utils.PathIsFile {
		return walker.Stats{}, fmt.Errorf("%w: %s is a file, while %s is a folder",
			domain.ErrDestinationConflict, localPath, remotePath)
	}

	if !o.dryRun {
		if err := utils.EnsureDir(o.fs, localPath); err != nil {
			return walker.Stats{}, fmt.Errorf("failed to create directory %s: %w", localPath, err)
		}
	}

	root := listedRoot(items, remotePath)
	return o.walker.Walk(ctx, walker.Job{
		RepoID:    repoID,
		Version:   version,
		Root:      root,
		Items:     items,
		LocalRoot: localPath,
		BaseLen:   utils.BaseLen(root),
	})
}

// ManifestResult represents the result of processing one manifest job
type ManifestResult struct {
	Job      manifest.Job
	Result   *Result
	Error    error
	Duration time.Duration
}

// RunManifest runs every job of the manifest in order and stops at the first failure.
// Jobs without a repository select one from the manifest project, or defaultProject
// when the manifest names none.
func (o *Orchestrator) RunManifest(ctx context.Context, manifestCfg *manifest.Config, defaultProject string) ([]ManifestResult, error) {
	startTime := time.Now()
	totalJobs := len(manifestCfg.Jobs)

	project := manifestCfg.Options.Project
	if project == "" {
		project = defaultProject
	}

	o.logger.Info().
		Int("jobs", totalJobs).
		Str("project", project).
		Msg("Starting manifest execution")

	results := make([]ManifestResult, 0, totalJobs)
	for idx, job := range manifestCfg.Jobs {
		if err := ctx.Err(); err != nil {
			o.logger.Warn().Msg("Manifest execution cancelled")
			return results, err
		}

		jobStart := time.Now()
		o.logger.Info().
			Int("job_idx", idx).
			Int("total", totalJobs).
			Str("job", job.String()).
			Msg("Processing job")

		res, err := o.Run(ctx, Request{
			Project:    project,
			RepoID:     job.Repository,
			RemotePath: job.Path,
			LocalPath:  job.Local,
			Ref:        job.Ref,
		})
		results = append(results, ManifestResult{
			Job:      job,
			Result:   res,
			Error:    err,
			Duration: time.Since(jobStart),
		})

		if err != nil {
			o.logger.Error().
				Err(err).
				Str("kind", domain.Kind(err)).
				Int("job_idx", idx).
				Str("job", job.String()).
				Msg("Job failed")
			return results, fmt.Errorf("job %d (%s) failed: %w", idx, job, err)
		}
	}

	o.logger.Info().
		Dur("total_duration", time.Since(startTime)).
		Int("total", totalJobs).
		Msg("Manifest execution completed")

	return results, nil
}
