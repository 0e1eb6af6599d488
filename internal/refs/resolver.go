// Package refs turns a user-supplied ref string into a version descriptor.
//
// Resolution order is branch, then tag, then a 40 character SHA1. A name that is
// both a branch and a tag resolves as the branch. Commits are not checked for
// existence because arbitrary commits cannot be enumerated through refs.
package refs

import (
	"context"
	"fmt"

	"github.com/quantmind-br/gitget/internal/domain"
)

// SHA1Length is the length of a full hexadecimal commit id
const SHA1Length = 40

// Resolve picks the descriptor for ref among the repository's ref names
func Resolve(ref string, refNames []string) (domain.VersionDescriptor, error) {
	if ref == "" {
		return domain.VersionDescriptor{Kind: domain.VersionNone}, nil
	}

	known := make(map[string]struct{}, len(refNames))
	for _, name := range refNames {
		known[name] = struct{}{}
	}

	if _, ok := known[domain.BranchRefPrefix+ref]; ok {
		return domain.VersionDescriptor{Ref: ref, Kind: domain.VersionBranch}, nil
	}
	if _, ok := known[domain.TagRefPrefix+ref]; ok {
		return domain.VersionDescriptor{Ref: ref, Kind: domain.VersionTag}, nil
	}
	if IsSHA1(ref) {
		return domain.VersionDescriptor{Ref: ref, Kind: domain.VersionCommit}, nil
	}

	return domain.VersionDescriptor{}, fmt.Errorf("%w: %q is not a branch, not a tag, not a proper SHA1 hash",
		domain.ErrInvalidReference, ref)
}

// IsSHA1 reports whether s is exactly 40 hexadecimal digits, in either case
func IsSHA1(s string) bool {
	if len(s) != SHA1Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Resolver resolves refs against a live repository
type Resolver struct {
	source domain.SourceControl
}

// NewResolver creates a Resolver reading refs from source
func NewResolver(source domain.SourceControl) *Resolver {
	return &Resolver{source: source}
}

// Resolve resolves ref in repoID. The ref list is fetched only for a non-empty ref.
func (r *Resolver) Resolve(ctx context.Context, repoID, ref string) (domain.VersionDescriptor, error) {
	if ref == "" {
		return Resolve("", nil)
	}

	refs, err := r.source.ListRefs(ctx, repoID)
	if err != nil {
		return domain.VersionDescriptor{}, domain.NewRemoteCallError("list refs", repoID, err)
	}

	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return Resolve(ref, names)
}
