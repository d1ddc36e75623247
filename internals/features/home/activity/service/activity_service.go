package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityModel "github.com/RonaldMark17/agridata-backend/internals/features/home/activity/model"
	notificationModel "github.com/RonaldMark17/agridata-backend/internals/features/home/notifications/model"
	userModel "github.com/RonaldMark17/agridata-backend/internals/features/users/user/model"
)

// ActivityService is the audit half of the side-effect pipeline. Logging is
// best-effort: it runs in its own transaction after the primary mutation
// has committed and never fails the parent request.
type ActivityService struct {
	DB *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{DB: db}
}

// Log inserts one audit row for the acting user. Skipped silently when no
// identity is resolvable (e.g. unauthenticated registration). entityID 0
// means "no entity".
func (s *ActivityService) Log(c *fiber.Ctx, userID *uint, action, entityType string, entityID uint, details string) {
	if userID == nil || *userID == 0 {
		return
	}

	row := activityModel.ActivityLogModel{
		UserID: userID,
		Action: humanize(action),
	}
	if entityType != "" {
		et := humanize(entityType)
		row.EntityType = &et
	}
	if entityID != 0 {
		eid := fmt.Sprintf("%d", entityID)
		row.EntityID = &eid
	}
	if details != "" {
		row.Details = &details
	}
	if c != nil {
		ip := c.IP()
		row.IPAddress = &ip
	}

	if err := s.DB.Create(&row).Error; err != nil {
		log.Printf("[ERROR] Activity logging failed: %v", err)
	}
}

// BroadcastNotification writes notification rows inside the caller's
// transaction, so a notification can never exist without its triggering
// event and vice versa.
//
// With a target it writes a single row, skipped when the addressee is the
// actor. Without one it fans out one row per active user excluding the
// actor; zero recipients is not an error.
func BroadcastNotification(tx *gorm.DB, actorID uint, title, message string, targetUserID *uint) error {
	if targetUserID != nil {
		if *targetUserID == actorID {
			return nil
		}
		uid := *targetUserID
		return tx.Create(&notificationModel.NotificationModel{
			UserID:  &uid,
			Title:   title,
			Message: message,
		}).Error
	}

	var recipients []uint
	q := tx.Model(&userModel.UserModel{}).Where("is_active = ?", true)
	if actorID != 0 {
		q = q.Where("id <> ?", actorID)
	}
	if err := q.Pluck("id", &recipients).Error; err != nil {
		return err
	}
	if len(recipients) == 0 {
		return nil
	}

	rows := make([]notificationModel.NotificationModel, 0, len(recipients))
	for i := range recipients {
		rows = append(rows, notificationModel.NotificationModel{
			UserID:  &recipients[i],
			Title:   title,
			Message: message,
		})
	}
	return tx.Create(&rows).Error
}

// action and entity strings are stored human-readable
func humanize(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}
