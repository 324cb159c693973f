package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"kodbot/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestStatsRepo_Increment(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewStatsRepo(db)

	mock.ExpectQuery("INSERT INTO usage_stats").
		WithArgs("101").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.Increment("101")

	assert.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepo_GetCount(t *testing.T) {
	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expected      int
		expectedError bool
	}{
		{
			name:     "existing code",
			mockRows: sqlmock.NewRows([]string{"count"}).AddRow(3),
			expected: 3,
		},
		{
			name:      "never delivered",
			mockError: sql.ErrNoRows,
			expected:  0,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewStatsRepo(db)

			query := "SELECT count FROM usage_stats WHERE code = \\$1"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs("101").WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs("101").WillReturnRows(tt.mockRows)
			}

			count, err := repo.GetCount("101")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, count)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStatsRepo_TopCodes(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewStatsRepo(db)

	rows := sqlmock.NewRows([]string{"code", "count"}).
		AddRow("b", 9).
		AddRow("a", 4)
	mock.ExpectQuery("SELECT code, count").WithArgs(2).WillReturnRows(rows)

	stats, err := repo.TopCodes(2)

	assert.NoError(t, err)
	assert.Equal(t, []domain.UsageStat{{Code: "b", Count: 9}, {Code: "a", Count: 4}}, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}
