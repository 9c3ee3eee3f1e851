package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type counterRow struct {
	ID    uint `gorm:"primarykey"`
	Value int
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&counterRow{}))
	return gdb
}

func TestRunInTransaction_RollsBackOnError(t *testing.T) {
	gdb := setupTestDB(t)
	tm := NewTransactionManager(gdb)
	ctx := context.Background()

	err := tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		assert.True(t, InTransaction(txCtx))
		require.NoError(t, GetTxFromContext(txCtx, gdb).Create(&counterRow{Value: 1}).Error)
		return errors.New("boom")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, gdb.Model(&counterRow{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRunInTransaction_NestedJoinsOuter(t *testing.T) {
	gdb := setupTestDB(t)
	tm := NewTransactionManager(gdb)
	ctx := context.Background()

	err := tm.RunInTransaction(ctx, func(outer context.Context) error {
		inner := tm.RunInTransaction(outer, func(innerCtx context.Context) error {
			return GetTxFromContext(innerCtx, gdb).Create(&counterRow{Value: 2}).Error
		})
		require.NoError(t, inner)
		return errors.New("outer failed")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, gdb.Model(&counterRow{}).Count(&count).Error)
	assert.Zero(t, count, "inner write must roll back with the outer transaction")
}

func TestGetTxFromContext_WithoutTransaction(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()

	assert.False(t, InTransaction(ctx))
	require.NoError(t, GetTxFromContext(ctx, gdb).Create(&counterRow{Value: 3}).Error)

	var row counterRow
	require.NoError(t, gdb.First(&row).Error)
	assert.Equal(t, 3, row.Value)
}
