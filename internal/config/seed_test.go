package config

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/techstore-lab/techstore/internal/hash"
	"github.com/techstore-lab/techstore/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.PendingProduct{}, &models.User{}))
	return db
}

func TestSeed(t *testing.T) {
	db := initTestDB(t)
	require.NoError(t, Seed(db))

	var products []models.Product
	require.NoError(t, db.Find(&products).Error)
	require.Len(t, products, 4)
	require.Equal(t, "Wireless Headphones", products[0].Name)
	require.EqualValues(t, 199.99, products[0].Price)

	var users []models.User
	require.NoError(t, db.Order("id ASC").Find(&users).Error)
	require.Len(t, users, 3)
	require.Equal(t, "admin", users[0].Username)
	require.Equal(t, "admin@techstore.com", users[0].Email)
	require.True(t, hash.CheckPassword(users[0].PasswordHash, "admin123"))
	require.False(t, hash.CheckPassword(users[0].PasswordHash, "wrong"))
	require.NotZero(t, users[0].CreatedAt)

	var pending int64
	require.NoError(t, db.Model(&models.PendingProduct{}).Count(&pending).Error)
	require.Zero(t, pending)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := initTestDB(t)
	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	var products int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.EqualValues(t, 4, products)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.EqualValues(t, 3, users)
}
