package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kingdom/infras/otel/mocks"
	"kingdom/infras/postgres"
	"kingdom/shared"
	"kingdom/shared/dto"
	"kingdom/shared/repository"
)

type widget struct {
	ID     string          `db:"id"`
	Name   string          `db:"name"`
	Price  decimal.Decimal `db:"price"`
	Status string          `db:"status"`
}

func newRepository(t *testing.T) (repository.Repository[widget], sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mockDB.Close()
	})

	db := sqlx.NewDb(mockDB, "postgres")

	return repository.NewRepository[widget]("widget", "widgets", "id", &postgres.Connection{Read: db, Write: db}, mocks.NewOtel()), mock
}

func byID(id string) dto.FilterGroup {
	return shared.FilterByID(id, "id", "widgets")
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := newRepository(t)

	assert.Equal(t, []string{"id", "name", "price", "status"}, repo.InsertColumns)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO widgets (id, name, price, status) VALUES ($1, $2, $3, $4)")).
		WithArgs("w-1", "Gizmo", sqlmock.AnyArg(), "ACTIVE").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), widget{ID: "w-1", Name: "Gizmo", Price: decimal.NewFromInt(10), Status: "ACTIVE"})
	require.NoError(t, err)
}

func TestRepository_Get(t *testing.T) {
	t.Run("returns the row", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectPrepare(regexp.QuoteMeta("SELECT widgets.id, widgets.name, widgets.price, widgets.status FROM widgets WHERE (widgets.id = $1)")).
			ExpectQuery().
			WithArgs("w-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "status"}).AddRow("w-1", "Gizmo", "10.50", "ACTIVE"))

		got, err := repo.Get(context.Background(), byID("w-1"))
		require.NoError(t, err)
		assert.Equal(t, "Gizmo", got.Name)
		assert.True(t, decimal.RequireFromString("10.5").Equal(got.Price))
	})

	t.Run("no rows yields the zero model", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectPrepare("SELECT").
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "status"}))

		got, err := repo.Get(context.Background(), byID("missing"))
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("selects only requested columns", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectPrepare(`SELECT widgets.id, widgets.name FROM widgets`).
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("w-1", "Gizmo"))

		got, err := repo.Get(context.Background(), byID("w-1"), "id", "name")
		require.NoError(t, err)
		assert.Equal(t, "w-1", got.ID)
	})
}

func TestRepository_GetAll(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT widgets.id, widgets.name, widgets.price, widgets.status FROM widgets WHERE (widgets.status = $1) ORDER BY widgets.name ASC LIMIT $2 OFFSET $3")).
		ExpectQuery().
		WithArgs("ACTIVE", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "status"}).
			AddRow("w-1", "Gizmo", "1", "ACTIVE").
			AddRow("w-2", "Sprocket", "2", "ACTIVE"))

	params := dto.QueryParams{Page: 2, Limit: 10, SortBy: "name", SortDir: "ASC"}

	got, err := repo.GetAll(context.Background(), params, shared.FilterByField("status", "ACTIVE", "widgets"))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRepository_GetAllIgnoresUnknownSortColumn(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`^SELECT widgets.id, widgets.name, widgets.price, widgets.status FROM widgets\s*$`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "status"}))

	got, err := repo.GetAll(context.Background(), dto.QueryParams{SortBy: "name; DROP TABLE widgets", SortDir: "ASC"}, dto.And())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRepository_ExistAndCount(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM widgets")).
		ExpectQuery().
		WithArgs("w-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectPrepare(regexp.QuoteMeta("SELECT COUNT(widgets.id) FROM widgets")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	exist, err := repo.Exist(context.Background(), byID("w-1"))
	require.NoError(t, err)
	assert.True(t, exist)

	count, err := repo.Count(context.Background(), dto.And())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE widgets SET name = $1, status = $2 WHERE (widgets.id = $3)")).
		WithArgs("Gadget", "RETIRED", "w-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), map[string]any{"status": "RETIRED", "name": "Gadget"}, byID("w-1"))
	require.NoError(t, err)
}

func TestRepository_RequiresFilter(t *testing.T) {
	repo, _ := newRepository(t)

	require.EqualError(t, repo.Delete(context.Background(), dto.And()), "required filter")
	require.EqualError(t, repo.Update(context.Background(), map[string]any{"name": "x"}, dto.And()), "required filter")

	_, err := repo.Exist(context.Background(), dto.And())
	require.EqualError(t, err, "required filter")
}

func TestRepository_Sum(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT COALESCE(SUM(widgets.price), 0) FROM widgets")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("42.25"))

	total, err := repo.Sum(context.Background(), "price", dto.And())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("42.25").Equal(total))

	_, err = repo.Sum(context.Background(), "cost", dto.And())
	require.Error(t, err)
}

func TestRepository_SumGroupBy(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT widgets.status AS group_key, COUNT(widgets.id) AS group_count, COALESCE(SUM(widgets.price), 0) AS group_total FROM widgets")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"group_key", "group_count", "group_total"}).
			AddRow("ACTIVE", 2, "30").
			AddRow("RETIRED", 1, "5.5"))

	got, err := repo.SumGroupBy(context.Background(), "status", "price", dto.And())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ACTIVE", got[0].Key)
	assert.Equal(t, 2, got[0].Count)
	assert.True(t, decimal.NewFromInt(30).Equal(got[0].Total))

	_, err = repo.SumGroupBy(context.Background(), "color", "price", dto.And())
	require.Error(t, err)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM widgets WHERE (widgets.id = $1)")).
		WithArgs("w-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), byID("w-1")))
}
