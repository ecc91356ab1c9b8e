package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"kingdom/infras/otel"
	"kingdom/infras/postgres"
	"kingdom/internal/domains/donation/model"
	gDto "kingdom/shared/dto"
	gRepo "kingdom/shared/repository"
)

type Donation interface {
	Insert(ctx context.Context, model model.Donation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Donation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Donation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Donation]
}

func New(db *postgres.Connection, otel otel.Otel) Donation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Donation](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
