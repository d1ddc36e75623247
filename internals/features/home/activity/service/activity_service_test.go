package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "github.com/RonaldMark17/agridata-backend/internals/databases"
	activityModel "github.com/RonaldMark17/agridata-backend/internals/features/home/activity/model"
	notificationModel "github.com/RonaldMark17/agridata-backend/internals/features/home/notifications/model"
	userModel "github.com/RonaldMark17/agridata-backend/internals/features/users/user/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, active bool) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		Username: username,
		Email:    username + "@example.com",
		Role:     "viewer",
		IsActive: active,
	}
	require.NoError(t, u.SetPassword("secret123"))
	require.NoError(t, db.Create(u).Error)
	if !active {
		// default:true wins on insert, flip explicitly
		require.NoError(t, db.Model(u).Update("is_active", false).Error)
		u.IsActive = false
	}
	return u
}

func TestBroadcastFansOutExcludingActor(t *testing.T) {
	db := openTestDB(t)
	actor := seedUser(t, db, "actor", true)
	seedUser(t, db, "alice", true)
	seedUser(t, db, "bob", true)
	seedUser(t, db, "carol", false)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return BroadcastNotification(tx, actor.ID, "New Farmer Onboarded", "Juan was registered", nil)
	}))

	var rows []notificationModel.NotificationModel
	db.Find(&rows)
	require.Len(t, rows, 2, "actor and inactive users are excluded")
	for _, r := range rows {
		require.NotNil(t, r.UserID)
		assert.NotEqual(t, actor.ID, *r.UserID)
		assert.False(t, r.IsRead)
	}
}

func TestBroadcastWithNoRecipients(t *testing.T) {
	db := openTestDB(t)
	actor := seedUser(t, db, "loner", true)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return BroadcastNotification(tx, actor.ID, "Knowledge Base Update", "New entry", nil)
	}))

	var count int64
	db.Model(&notificationModel.NotificationModel{}).Count(&count)
	assert.Zero(t, count)
}

func TestTargetedNotificationSkipsSelf(t *testing.T) {
	db := openTestDB(t)
	actor := seedUser(t, db, "author", true)
	other := seedUser(t, db, "reader", true)

	require.NoError(t, BroadcastNotification(db, actor.ID, "New Comment", "on your entry", &actor.ID))
	var count int64
	db.Model(&notificationModel.NotificationModel{}).Count(&count)
	assert.Zero(t, count, "self-targeted notification is dropped")

	require.NoError(t, BroadcastNotification(db, actor.ID, "New Comment", "on your entry", &other.ID))
	var row notificationModel.NotificationModel
	require.NoError(t, db.First(&row).Error)
	require.NotNil(t, row.UserID)
	assert.Equal(t, other.ID, *row.UserID)
}

func TestLogHumanizesAndSkipsAnonymous(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "encoder", true)
	svc := NewActivityService(db)

	svc.Log(nil, nil, "FARMER_CREATED", "Farmer", 1, "should be skipped")
	var count int64
	db.Model(&activityModel.ActivityLogModel{}).Count(&count)
	require.Zero(t, count)

	svc.Log(nil, &user.ID, "FARMER_CREATED", "Farmer", 7, "Registered farmer Juan")
	var row activityModel.ActivityLogModel
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, "FARMER CREATED", row.Action)
	require.NotNil(t, row.EntityID)
	assert.Equal(t, "7", *row.EntityID)
	require.NotNil(t, row.Details)
	assert.Equal(t, "Registered farmer Juan", *row.Details)
}
