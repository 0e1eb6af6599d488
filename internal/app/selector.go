package app

import (
	"context"
	"fmt"

	"github.com/quantmind-br/gitget/internal/domain"
)

// SelectRepository picks the repository to mirror from when none was given.
// It succeeds only when the project holds exactly one repository.
func SelectRepository(ctx context.Context, source domain.SourceControl, project string) (domain.Repository, error) {
	repos, err := source.ListRepositories(ctx, project)
	if err != nil {
		return domain.Repository{}, domain.NewRemoteCallError("list repositories", project, err)
	}

	switch len(repos) {
	case 0:
		return domain.Repository{}, fmt.Errorf("%w: there are no Git repositories in project %s. If the source repo is in another project, please specify it",
			domain.ErrNoRepository, project)
	case 1:
		return repos[0], nil
	default:
		return domain.Repository{}, fmt.Errorf("%w: there are multiple Git repositories in project %s, please specify one",
			domain.ErrAmbiguousRepository, project)
	}
}
