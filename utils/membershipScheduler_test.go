package utils_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"caselab/database"
	"caselab/models"
	"caselab/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestExpireMemberships(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	database.Database = database.DbInstance{Db: db}

	past := time.Now().AddDate(0, 0, -2)
	future := time.Now().AddDate(0, 1, 0)

	lapsed := models.User{Email: "lapsed@example.com", Password: "x", Role: "student", MembershipType: "premium", MembershipExpiresAt: &past}
	active := models.User{Email: "active@example.com", Password: "x", Role: "student", MembershipType: "premium", MembershipExpiresAt: &future}
	lifetime := models.User{Email: "lifetime@example.com", Password: "x", Role: "student", MembershipType: "premium"}
	require.NoError(t, db.Create(&lapsed).Error)
	require.NoError(t, db.Create(&active).Error)
	require.NoError(t, db.Create(&lifetime).Error)

	utils.ExpireMemberships()

	var user models.User
	require.NoError(t, db.First(&user, lapsed.ID).Error)
	assert.Equal(t, "free", user.MembershipType)
	assert.Nil(t, user.MembershipExpiresAt)

	user = models.User{}
	require.NoError(t, db.First(&user, active.ID).Error)
	assert.Equal(t, "premium", user.MembershipType)

	// no expiry date means the membership never lapses
	user = models.User{}
	require.NoError(t, db.First(&user, lifetime.ID).Error)
	assert.Equal(t, "premium", user.MembershipType)
}

func TestExpireMembershipsWithoutDatabase(t *testing.T) {
	database.Database = database.DbInstance{Db: nil}
	assert.NotPanics(t, func() { utils.ExpireMemberships() })
}
