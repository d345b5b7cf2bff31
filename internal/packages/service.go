package packages

import "context"

type Service interface {
	List(ctx context.Context) ([]*Package, error)
	Get(ctx context.Context, id uint) (*Package, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Package, error) {
	return s.repo.List(ctx)
}

// Get returns an active package; inactive tiers cannot be purchased.
func (s *service) Get(ctx context.Context, id uint) (*Package, error) {
	pkg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !pkg.Active {
		return nil, ErrPackageInactive
	}
	return pkg, nil
}
