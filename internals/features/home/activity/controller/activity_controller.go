package controller

import (
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"github.com/RonaldMark17/agridata-backend/internals/features/home/activity/model"
	userModel "github.com/RonaldMark17/agridata-backend/internals/features/users/user/model"
	helper "github.com/RonaldMark17/agridata-backend/internals/helpers"
)

type ActivityController struct {
	DB *gorm.DB
}

func NewActivityController(db *gorm.DB) *ActivityController {
	return &ActivityController{DB: db}
}

// GET /api/activity-logs
//
// Read-only audit trail, newest first. Rows whose author account is gone
// keep a generic "System" label.
func (ctrl *ActivityController) GetActivityLogs(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	var total int64
	if err := ctrl.DB.Model(&model.ActivityLogModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count activity logs")
	}

	var logs []model.ActivityLogModel
	if err := ctrl.DB.Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&logs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch activity logs")
	}

	// one lookup per distinct author in the page
	names := map[uint]string{}
	for _, l := range logs {
		if l.UserID != nil {
			names[*l.UserID] = ""
		}
	}
	if len(names) > 0 {
		ids := make([]uint, 0, len(names))
		for id := range names {
			ids = append(ids, id)
		}
		var users []userModel.UserModel
		ctrl.DB.Where("id IN ?", ids).Find(&users)
		for _, u := range users {
			name := u.FullName
			if name == "" {
				name = u.Username
			}
			names[u.ID] = name
		}
	}

	items := make([]fiber.Map, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		userName := "System"
		if l.UserID != nil {
			if n, ok := names[*l.UserID]; ok && n != "" {
				userName = n
			} else {
				userName = "Former member"
			}
		}
		items = append(items, fiber.Map{
			"id":          l.ID,
			"user_id":     l.UserID,
			"user_name":   userName,
			"action":      l.Action,
			"entity_type": l.EntityType,
			"entity_id":   l.EntityID,
			"details":     l.Details,
			"ip_address":  l.IPAddress,
			"created_at":  l.CreatedAt,
		})
	}

	return helper.JsonList(c, items, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
