package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/carzuiliam/shopping-api/pkg/db/models"
	pkgerrors "github.com/carzuiliam/shopping-api/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes brand and department read paths.
type Service interface {
	ListBrands(ctx context.Context) ([]models.Brand, error)
	GetBrand(ctx context.Context, id int64) (*models.Brand, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
	GetDepartment(ctx context.Context, id int64) (*models.Department, error)
}

type service struct {
	repo *Repository
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListBrands(ctx context.Context) ([]models.Brand, error) {
	rows, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}
	return rows, nil
}

func (s *service) GetBrand(ctx context.Context, id int64) (*models.Brand, error) {
	brand, err := s.repo.GetBrand(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand")
	}
	return brand, nil
}

func (s *service) ListDepartments(ctx context.Context) ([]models.Department, error) {
	rows, err := s.repo.ListDepartments(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list departments")
	}
	return rows, nil
}

func (s *service) GetDepartment(ctx context.Context, id int64) (*models.Department, error) {
	department, err := s.repo.GetDepartment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "department not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load department")
	}
	return department, nil
}
