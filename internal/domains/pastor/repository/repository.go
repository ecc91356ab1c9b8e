package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"kingdom/infras/otel"
	"kingdom/infras/postgres"
	"kingdom/internal/domains/pastor/model"
	gDto "kingdom/shared/dto"
	gRepo "kingdom/shared/repository"
)

type Pastor interface {
	Insert(ctx context.Context, model model.Pastor) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Pastor, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Pastor, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Pastor]
}

func New(db *postgres.Connection, otel otel.Otel) Pastor {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Pastor](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
