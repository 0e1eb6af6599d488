// Package inmem provides an in-memory domain.SourceControl for tests.
package inmem

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/quantmind-br/gitget/internal/domain"
)

// InMem is an in-memory domain.SourceControl. Files are seeded per repository
// and per ref; the empty ref stands for the default branch.
type InMem struct {
	mu           sync.Mutex
	files        map[string]map[string]map[string]string // repoID -> ref -> path -> content
	refs         map[string][]domain.Ref
	repositories map[string][]domain.Repository
	failures     map[string]error // "op path" -> error
	calls        []string
}

// NewInMem creates an empty InMem source.
func NewInMem() *InMem {
	return &InMem{
		files:        make(map[string]map[string]map[string]string),
		refs:         make(map[string][]domain.Ref),
		repositories: make(map[string][]domain.Repository),
		failures:     make(map[string]error),
	}
}

// SetFile seeds a file at ref ("" for the default branch).
func (m *InMem) SetFile(repoID, ref, path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byRef, ok := m.files[repoID]
	if !ok {
		byRef = make(map[string]map[string]string)
		m.files[repoID] = byRef
	}
	if byRef[ref] == nil {
		byRef[ref] = make(map[string]string)
	}
	byRef[ref][domain.NormalizeRemoteItemPath(path)] = content
}

// AddRef registers a full ref name, e.g. "refs/heads/main".
func (m *InMem) AddRef(repoID, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refs[repoID] = append(m.refs[repoID], domain.Ref{Name: name})
}

// AddRepository registers a repository under a project.
func (m *InMem) AddRepository(project string, repo domain.Repository) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.repositories[project] = append(m.repositories[project], repo)
}

// Fail makes the next calls of op ("list", "get", "refs", "repos") on target fail.
// target is a path for list and get, a repository id for refs and a project for repos.
func (m *InMem) Fail(op, target string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op+" "+target] = err
}

// Calls returns every call made so far, e.g. "list /src" or "get /src/a.txt".
func (m *InMem) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *InMem) record(op, target string) error {
	m.calls = append(m.calls, op+" "+target)
	return m.failures[op+" "+target]
}

func (m *InMem) snapshot(repoID string, version domain.VersionDescriptor) (map[string]string, error) {
	byRef, ok := m.files[repoID]
	if !ok {
		return nil, fmt.Errorf("repository %s not found", repoID)
	}
	files, ok := byRef[version.Ref]
	if !ok {
		return nil, fmt.Errorf("version %s not found in %s", version, repoID)
	}
	return files, nil
}

// ListItems lists path and its immediate children, sorted by path.
func (m *InMem) ListItems(_ context.Context, repoID, path string, version domain.VersionDescriptor) ([]domain.RemoteItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = domain.NormalizeRemoteItemPath(path)
	if err := m.record("list", path); err != nil {
		return nil, err
	}

	files, err := m.snapshot(repoID, version)
	if err != nil {
		return nil, err
	}

	if _, ok := files[path]; ok {
		return []domain.RemoteItem{{Path: path, Kind: domain.ObjectBlob}}, nil
	}

	prefix := path + "/"
	if path == "/" {
		prefix = "/"
	}

	children := make(map[string]domain.ObjectKind)
	for p := range files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := p[len(prefix):]
		if i := strings.Index(rest, "/"); i >= 0 {
			children[prefix+rest[:i]] = domain.ObjectTree
		} else {
			children[p] = domain.ObjectBlob
		}
	}
	if len(children) == 0 {
		return nil, nil
	}

	items := make([]domain.RemoteItem, 0, len(children)+1)
	for p, kind := range children {
		items = append(items, domain.RemoteItem{Path: p, Kind: kind})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })

	return append([]domain.RemoteItem{{Path: path, Kind: domain.ObjectTree}}, items...), nil
}

// GetFileContent returns the content of a seeded file.
func (m *InMem) GetFileContent(_ context.Context, repoID, path string, version domain.VersionDescriptor) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = domain.NormalizeRemoteItemPath(path)
	if err := m.record("get", path); err != nil {
		return nil, err
	}

	files, err := m.snapshot(repoID, version)
	if err != nil {
		return nil, err
	}
	content, ok := files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

// ListRefs returns the refs registered with AddRef.
func (m *InMem) ListRefs(_ context.Context, repoID string) ([]domain.Ref, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("refs", repoID); err != nil {
		return nil, err
	}
	out := make([]domain.Ref, len(m.refs[repoID]))
	copy(out, m.refs[repoID])
	return out, nil
}

// ListRepositories returns the repositories registered with AddRepository.
func (m *InMem) ListRepositories(_ context.Context, project string) ([]domain.Repository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("repos", project); err != nil {
		return nil, err
	}
	out := make([]domain.Repository, len(m.repositories[project]))
	copy(out, m.repositories[project])
	return out, nil
}

var _ domain.SourceControl = (*InMem)(nil)
