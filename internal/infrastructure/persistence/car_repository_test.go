package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/carhive/backend/internal/domain/listing"
	"github.com/carhive/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCarRepository creates a GormCarRepository with a mocked SQL connection
func newMockCarRepository(t *testing.T) (*GormCarRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCarRepository(gormDB), mock, mockDB
}

func newStoredCar(t *testing.T, ownerID uuid.UUID) *listing.Car {
	car, err := listing.NewCar(ownerID, "Blue Sedan", "A well kept family sedan",
		[]string{"sedan", "blue"}, []string{"https://cdn.test/cars/1.jpg"})
	require.NoError(t, err)
	return car
}

func TestGormCarRepository_Create(t *testing.T) {
	t.Run("inserts a new car", func(t *testing.T) {
		repo, mock, mockDB := newMockCarRepository(t)
		defer mockDB.Close()

		car := newStoredCar(t, uuid.New())

		mock.ExpectExec(`INSERT INTO "cars"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(context.Background(), car)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCarRepository_Update(t *testing.T) {
	t.Run("updates the owner's car", func(t *testing.T) {
		repo, mock, mockDB := newMockCarRepository(t)
		defer mockDB.Close()

		car := newStoredCar(t, uuid.New())

		mock.ExpectExec(`UPDATE "cars" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), car)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when no row matches", func(t *testing.T) {
		repo, mock, mockDB := newMockCarRepository(t)
		defer mockDB.Close()

		car := newStoredCar(t, uuid.New())

		mock.ExpectExec(`UPDATE "cars" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), car)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCarRepository_Delete(t *testing.T) {
	t.Run("deletes the owner's car", func(t *testing.T) {
		repo, mock, mockDB := newMockCarRepository(t)
		defer mockDB.Close()

		carID := uuid.New()
		ownerID := uuid.New()

		mock.ExpectExec(`DELETE FROM "cars" WHERE id = \$1 AND owner_id = \$2`).
			WithArgs(carID, ownerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), carID, ownerID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for another owner's car", func(t *testing.T) {
		repo, mock, mockDB := newMockCarRepository(t)
		defer mockDB.Close()

		carID := uuid.New()
		ownerID := uuid.New()

		mock.ExpectExec(`DELETE FROM "cars" WHERE id = \$1 AND owner_id = \$2`).
			WithArgs(carID, ownerID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), carID, ownerID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCarRepository_FindByIDAndOwner(t *testing.T) {
	t.Run("finds the owner's car", func(t *testing.T) {
		repo, mock, mockDB := newMockCarRepository(t)
		defer mockDB.Close()

		carID := uuid.New()
		ownerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "title", "description", "tags", "images", "owner_id"}).
			AddRow(carID, "Blue Sedan", "A well kept family sedan",
				`{sedan,blue}`, `{https://cdn.test/cars/1.jpg}`, ownerID)

		mock.ExpectQuery(`SELECT \* FROM "cars" WHERE id = \$1 AND owner_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(carID, ownerID, 1).
			WillReturnRows(rows)

		car, err := repo.FindByIDAndOwner(context.Background(), carID, ownerID)

		assert.NoError(t, err)
		require.NotNil(t, car)
		assert.Equal(t, carID, car.ID)
		assert.Equal(t, []string{"sedan", "blue"}, car.Tags)
		assert.Equal(t, []string{"https://cdn.test/cars/1.jpg"}, car.Images)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for a foreign or missing car", func(t *testing.T) {
		repo, mock, mockDB := newMockCarRepository(t)
		defer mockDB.Close()

		carID := uuid.New()
		ownerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "cars" WHERE id = \$1 AND owner_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(carID, ownerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		car, err := repo.FindByIDAndOwner(context.Background(), carID, ownerID)

		assert.Nil(t, car)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCarRepository_List(t *testing.T) {
	t.Run("lists the owner's cars newest first", func(t *testing.T) {
		repo, mock, mockDB := newMockCarRepository(t)
		defer mockDB.Close()

		ownerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "title", "description", "tags", "images", "owner_id"}).
			AddRow(uuid.New(), "Red SUV", "Spacious and rugged", `{suv}`, `{}`, ownerID).
			AddRow(uuid.New(), "Blue Sedan", "A well kept family sedan", `{sedan}`, `{}`, ownerID)

		mock.ExpectQuery(`SELECT \* FROM "cars" WHERE owner_id = \$1 ORDER BY created_at DESC`).
			WithArgs(ownerID).
			WillReturnRows(rows)

		cars, err := repo.List(context.Background(), listing.NewListFilter(ownerID, ""))

		assert.NoError(t, err)
		require.Len(t, cars, 2)
		assert.Equal(t, "Red SUV", cars[0].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search matches title, description, or an exact tag", func(t *testing.T) {
		repo, mock, mockDB := newMockCarRepository(t)
		defer mockDB.Close()

		ownerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "title", "description", "tags", "images", "owner_id"}).
			AddRow(uuid.New(), "Blue Sedan", "A well kept family sedan", `{sedan}`, `{}`, ownerID)

		mock.ExpectQuery(`SELECT \* FROM "cars" WHERE owner_id = \$1 AND \(title ILIKE \$2 OR description ILIKE \$3 OR \$4 = ANY\(tags\)\) ORDER BY created_at DESC`).
			WithArgs(ownerID, "%sedan%", "%sedan%", "sedan").
			WillReturnRows(rows)

		cars, err := repo.List(context.Background(), listing.NewListFilter(ownerID, "sedan"))

		assert.NoError(t, err)
		require.Len(t, cars, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns an empty slice when the owner has no cars", func(t *testing.T) {
		repo, mock, mockDB := newMockCarRepository(t)
		defer mockDB.Close()

		ownerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "title", "description", "tags", "images", "owner_id"})

		mock.ExpectQuery(`SELECT \* FROM "cars" WHERE owner_id = \$1 ORDER BY created_at DESC`).
			WithArgs(ownerID).
			WillReturnRows(rows)

		cars, err := repo.List(context.Background(), listing.NewListFilter(ownerID, ""))

		assert.NoError(t, err)
		assert.Empty(t, cars)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
