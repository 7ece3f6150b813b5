package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rmdantas/agenda-api/internal/config"
)

func newAuthMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func newRegisterRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewAuthHandler(db, &config.Config{JWTSecret: "test-secret"})
	h.emailDomainValid = func(string) bool { return true }

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	return r
}

func postRegister(t *testing.T, r *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(gin.H{
		"username": "alice",
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret1",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterSeedsScheduleInOneTransaction(t *testing.T) {
	db, mock := newAuthMockDB(t)
	r := newRegisterRouter(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "providers" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "providers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "working_hours"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow(1).AddRow(2).AddRow(3).AddRow(4).AddRow(5).AddRow(6).AddRow(7))
	mock.ExpectCommit()

	w := postRegister(t, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failed schedule seed must roll the provider row back too; a committed
// provider with no hours would serve an empty grid forever.
func TestRegisterRollsBackProviderWhenSeedFails(t *testing.T) {
	db, mock := newAuthMockDB(t)
	r := newRegisterRouter(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "providers" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "providers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "working_hours"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	w := postRegister(t, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDefaultScheduleCoversEveryWeekday(t *testing.T) {
	hours := defaultSchedule(42)

	require.Len(t, hours, 7)
	for weekday, wh := range hours {
		assert.Equal(t, uint(42), wh.ProviderID)
		assert.Equal(t, weekday, wh.Weekday)
		assert.True(t, wh.Active)
		assert.Equal(t, "09:00", wh.StartTime)
		assert.Equal(t, "18:00", wh.EndTime)
	}
}
