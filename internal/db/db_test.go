package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"wastewise/internal/model"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "dsn")
	assert.ErrorContains(t, err, "unsupported db driver")
}

func TestMigrate_CreatesSchema(t *testing.T) {
	gormDB, err := Open(DriverSQLite, ":memory:")
	require.NoError(t, err)

	require.NoError(t, Migrate(gormDB, false))
	for _, table := range []string{"users", "waste_entries", "waste_collection", "food_donations", "activity_logs"} {
		assert.True(t, gormDB.Migrator().HasTable(table), table)
	}

	require.NoError(t, gormDB.Create(&model.User{Username: "u", Email: "u@example.com", PasswordHash: "x", Role: model.RoleUser}).Error)

	require.NoError(t, Migrate(gormDB, true))
	var count int64
	require.NoError(t, gormDB.Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

type capturedLog struct {
	lines []string
}

func (c *capturedLog) Printf(format string, args ...interface{}) {
	c.lines = append(c.lines, fmt.Sprintf(format, args...))
}

func TestGormLogger_IgnoresRecordNotFound(t *testing.T) {
	out := &capturedLog{}
	l := newGormLogger(out)
	query := func() (string, int64) { return "SELECT * FROM `users` WHERE email = 'alice@example.com'", 0 }

	l.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	assert.Empty(t, out.lines)

	l.Trace(context.Background(), time.Now(), query, errors.New("connection refused"))
	require.Len(t, out.lines, 1)
	assert.Contains(t, out.lines[0], "connection refused")
}
