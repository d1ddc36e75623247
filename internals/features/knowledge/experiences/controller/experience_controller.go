package controller

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RonaldMark17/agridata-backend/internals/constants"
	activityService "github.com/RonaldMark17/agridata-backend/internals/features/home/activity/service"
	"github.com/RonaldMark17/agridata-backend/internals/features/knowledge/experiences/dto"
	"github.com/RonaldMark17/agridata-backend/internals/features/knowledge/experiences/model"
	farmerModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/model"
	helper "github.com/RonaldMark17/agridata-backend/internals/helpers"
	helperAuth "github.com/RonaldMark17/agridata-backend/internals/helpers/auth"
)

var validate = validator.New()

type ExperienceController struct {
	DB       *gorm.DB
	Activity *activityService.ActivityService
}

func NewExperienceController(db *gorm.DB) *ExperienceController {
	return &ExperienceController{DB: db, Activity: activityService.NewActivityService(db)}
}

func parseRecordedDate(raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil
	}
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func (ctrl *ExperienceController) likesCount(experienceID uint) int64 {
	var n int64
	ctrl.DB.Table("experience_likes").Where("experience_id = ?", experienceID).Count(&n)
	return n
}

func (ctrl *ExperienceController) likedBy(experienceID, userID uint) bool {
	var n int64
	ctrl.DB.Table("experience_likes").
		Where("experience_id = ? AND user_id = ?", experienceID, userID).Count(&n)
	return n > 0
}

func (ctrl *ExperienceController) serializeComment(cm *model.ExperienceCommentModel, viewerID uint) fiber.Map {
	var likes, liked int64
	ctrl.DB.Table("comment_likes").Where("comment_id = ?", cm.ID).Count(&likes)
	ctrl.DB.Table("comment_likes").
		Where("comment_id = ? AND user_id = ?", cm.ID, viewerID).Count(&liked)

	authorName := "Former member"
	if cm.User != nil {
		authorName = cm.User.FullName
		if authorName == "" {
			authorName = cm.User.Username
		}
	}
	return fiber.Map{
		"id":             cm.ID,
		"experience_id":  cm.ExperienceID,
		"user_id":        cm.UserID,
		"author_name":    authorName,
		"text":           cm.Text,
		"likes_count":    likes,
		"is_liked_by_me": liked > 0,
		"created_at":     cm.CreatedAt,
	}
}

func (ctrl *ExperienceController) serializeExperience(e *model.FarmerExperienceModel, viewerID uint, withComments bool) fiber.Map {
	out := fiber.Map{
		"id":               e.ID,
		"farmer_id":        e.FarmerID,
		"experience_type":  e.ExperienceType,
		"title":            e.Title,
		"description":      e.Description,
		"date_recorded":    e.DateRecorded,
		"interviewer_id":   e.InterviewerID,
		"location":         e.Location,
		"context":          e.Context,
		"impact_level":     e.ImpactLevel,
		"comments_enabled": e.CommentsEnabled,
		"likes_count":      ctrl.likesCount(e.ID),
		"is_liked_by_me":   ctrl.likedBy(e.ID, viewerID),
		"created_at":       e.CreatedAt,
		"updated_at":       e.UpdatedAt,
	}
	if e.Farmer != nil {
		out["farmer_name"] = e.Farmer.FullName()
	}
	if e.Interviewer != nil {
		name := e.Interviewer.FullName
		if name == "" {
			name = e.Interviewer.Username
		}
		out["interviewer_name"] = name
	}
	if withComments {
		var comments []model.ExperienceCommentModel
		ctrl.DB.Preload("User").Where("experience_id = ?", e.ID).Order("created_at ASC").Find(&comments)
		items := make([]fiber.Map, 0, len(comments))
		for i := range comments {
			items = append(items, ctrl.serializeComment(&comments[i], viewerID))
		}
		out["comments"] = items
	} else {
		var n int64
		ctrl.DB.Model(&model.ExperienceCommentModel{}).Where("experience_id = ?", e.ID).Count(&n)
		out["comments_count"] = n
	}
	return out
}

// GET /api/experiences
func (ctrl *ExperienceController) GetExperiences(c *fiber.Ctx) error {
	viewerID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	paging := helper.ResolvePaging(c, 10, 50)

	q := ctrl.DB.Model(&model.FarmerExperienceModel{})
	if farmerID := strings.TrimSpace(c.Query("farmer_id")); farmerID != "" {
		if id, err := strconv.Atoi(farmerID); err == nil && id > 0 {
			q = q.Where("farmer_id = ?", id)
		}
	}
	if expType := strings.TrimSpace(c.Query("experience_type")); expType != "" {
		q = q.Where("LOWER(experience_type) = LOWER(?)", expType)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count experiences")
	}

	var experiences []model.FarmerExperienceModel
	if err := q.Preload("Farmer").Preload("Interviewer").
		Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&experiences).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch experiences")
	}

	items := make([]fiber.Map, 0, len(experiences))
	for i := range experiences {
		items = append(items, ctrl.serializeExperience(&experiences[i], viewerID, false))
	}
	return helper.JsonList(c, items, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/experiences/:id
func (ctrl *ExperienceController) GetExperience(c *fiber.Ctx) error {
	viewerID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	var experience model.FarmerExperienceModel
	if err := ctrl.DB.Preload("Farmer").Preload("Interviewer").First(&experience, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Experience not found")
	}
	return helper.JsonOK(c, "ok", ctrl.serializeExperience(&experience, viewerID, true))
}

// POST /api/experiences
func (ctrl *ExperienceController) CreateExperience(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.ExperienceCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var farmer farmerModel.FarmerModel
	if err := ctrl.DB.First(&farmer, req.FarmerID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown farmer")
	}

	experience := model.FarmerExperienceModel{
		FarmerID:        farmer.ID,
		ExperienceType:  req.ExperienceType,
		Title:           req.Title,
		Description:     req.Description,
		DateRecorded:    parseRecordedDate(req.DateRecorded),
		InterviewerID:   &userID,
		Location:        req.Location,
		Context:         req.Context,
		ImpactLevel:     req.ImpactLevel,
		CommentsEnabled: true,
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&experience).Error; err != nil {
			return err
		}
		return activityService.BroadcastNotification(tx, userID,
			"Knowledge Base Update",
			fmt.Sprintf("New experience recorded: %s (%s)", experience.Title, farmer.FullName()),
			nil)
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create experience")
	}

	ctrl.Activity.Log(c, &userID, "EXPERIENCE_CREATED", "FarmerExperience", experience.ID,
		fmt.Sprintf("Recorded experience %q for %s", experience.Title, farmer.FullName()))

	return helper.JsonCreated(c, "Experience recorded successfully", ctrl.serializeExperience(&experience, userID, false))
}

// PUT /api/experiences/:id
//
// Only the interviewer who recorded the entry or an admin may edit it.
func (ctrl *ExperienceController) UpdateExperience(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var experience model.FarmerExperienceModel
	if err := ctrl.DB.First(&experience, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Experience not found")
	}

	role := helperAuth.GetRole(c)
	isOwner := experience.InterviewerID != nil && *experience.InterviewerID == userID
	if !isOwner && role != constants.RoleAdmin {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the interviewer or an admin may edit this entry")
	}

	var req dto.ExperienceUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if req.ExperienceType != nil {
		experience.ExperienceType = *req.ExperienceType
	}
	if req.Title != nil {
		experience.Title = *req.Title
	}
	if req.Description != nil {
		experience.Description = *req.Description
	}
	if req.DateRecorded != nil {
		experience.DateRecorded = parseRecordedDate(req.DateRecorded)
	}
	if req.Location != nil {
		experience.Location = req.Location
	}
	if req.Context != nil {
		experience.Context = req.Context
	}
	if req.ImpactLevel != nil {
		experience.ImpactLevel = req.ImpactLevel
	}
	if req.CommentsEnabled != nil {
		experience.CommentsEnabled = *req.CommentsEnabled
	}

	if err := ctrl.DB.Save(&experience).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update experience")
	}

	ctrl.Activity.Log(c, &userID, "EXPERIENCE_UPDATED", "FarmerExperience", experience.ID,
		fmt.Sprintf("Updated experience %q", experience.Title))

	return helper.JsonUpdated(c, "Experience updated successfully", ctrl.serializeExperience(&experience, userID, false))
}

// DELETE /api/experiences/:id
func (ctrl *ExperienceController) DeleteExperience(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var experience model.FarmerExperienceModel
	if err := ctrl.DB.First(&experience, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Experience not found")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM experience_likes WHERE experience_id = ?", experience.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"DELETE FROM comment_likes WHERE comment_id IN (SELECT id FROM experience_comments WHERE experience_id = ?)",
			experience.ID,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("experience_id = ?", experience.ID).Delete(&model.ExperienceCommentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&experience).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete experience")
	}

	ctrl.Activity.Log(c, &userID, "EXPERIENCE_DELETED", "FarmerExperience", uint(id),
		fmt.Sprintf("Deleted experience %q", experience.Title))

	return helper.JsonDeleted(c, "Experience deleted successfully", nil)
}

// POST /api/experiences/:id/like
//
// Toggle. Returns the new like state and count.
func (ctrl *ExperienceController) ToggleExperienceLike(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var experience model.FarmerExperienceModel
	if err := ctrl.DB.First(&experience, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Experience not found")
	}

	liked := ctrl.likedBy(experience.ID, userID)
	if liked {
		err = ctrl.DB.Exec(
			"DELETE FROM experience_likes WHERE experience_id = ? AND user_id = ?",
			experience.ID, userID,
		).Error
	} else {
		err = ctrl.DB.Exec(
			"INSERT INTO experience_likes (experience_id, user_id) VALUES (?, ?)",
			experience.ID, userID,
		).Error
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update like")
	}

	action, verb := "EXPERIENCE_LIKED", "Liked"
	if liked {
		action, verb = "EXPERIENCE_UNLIKED", "Unliked"
	}
	ctrl.Activity.Log(c, &userID, action, "FarmerExperience", experience.ID,
		fmt.Sprintf("%s experience %q", verb, experience.Title))

	return helper.JsonOK(c, "ok", fiber.Map{
		"liked":       !liked,
		"likes_count": ctrl.likesCount(experience.ID),
	})
}

// POST /api/experiences/:id/comments
func (ctrl *ExperienceController) AddComment(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var experience model.FarmerExperienceModel
	if err := ctrl.DB.First(&experience, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Experience not found")
	}
	if !experience.CommentsEnabled {
		return helper.JsonError(c, fiber.StatusForbidden, "Comments are disabled for this entry")
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	comment := model.ExperienceCommentModel{
		ExperienceID: experience.ID,
		UserID:       userID,
		Text:         strings.TrimSpace(req.Text),
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		// the interviewer, if still around, hears about discussion on
		// their entry
		if experience.InterviewerID != nil {
			return activityService.BroadcastNotification(tx, userID,
				"New Comment",
				fmt.Sprintf("Someone commented on %q", experience.Title),
				experience.InterviewerID)
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to add comment")
	}

	ctrl.Activity.Log(c, &userID, "COMMENT_ADDED", "ExperienceComment", comment.ID,
		fmt.Sprintf("Commented on %q", experience.Title))

	ctrl.DB.Preload("User").First(&comment, comment.ID)
	return helper.JsonCreated(c, "Comment added successfully", ctrl.serializeComment(&comment, userID))
}

// PUT /api/experiences/:id/comments/:commentId
func (ctrl *ExperienceController) UpdateComment(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	experienceID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	commentID, err := strconv.Atoi(c.Params("commentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var comment model.ExperienceCommentModel
	if err := ctrl.DB.
		Where("id = ? AND experience_id = ?", commentID, experienceID).
		First(&comment).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Comment not found")
	}

	role := helperAuth.GetRole(c)
	if comment.UserID != userID && role != constants.RoleAdmin {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the author or an admin may edit this comment")
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	comment.Text = strings.TrimSpace(req.Text)
	if err := ctrl.DB.Save(&comment).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update comment")
	}

	ctrl.DB.Preload("User").First(&comment, comment.ID)
	return helper.JsonUpdated(c, "Comment updated successfully", ctrl.serializeComment(&comment, userID))
}

// DELETE /api/experiences/:id/comments/:commentId
func (ctrl *ExperienceController) DeleteComment(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	experienceID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	commentID, err := strconv.Atoi(c.Params("commentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var comment model.ExperienceCommentModel
	if err := ctrl.DB.
		Where("id = ? AND experience_id = ?", commentID, experienceID).
		First(&comment).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Comment not found")
	}

	role := helperAuth.GetRole(c)
	if comment.UserID != userID && role != constants.RoleAdmin {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the author or an admin may delete this comment")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM comment_likes WHERE comment_id = ?", comment.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete comment")
	}

	return helper.JsonDeleted(c, "Comment deleted successfully", nil)
}

// POST /api/experiences/:id/comments/:commentId/like
func (ctrl *ExperienceController) ToggleCommentLike(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	experienceID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	commentID, err := strconv.Atoi(c.Params("commentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var comment model.ExperienceCommentModel
	if err := ctrl.DB.
		Where("id = ? AND experience_id = ?", commentID, experienceID).
		First(&comment).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Comment not found")
	}

	var existing int64
	ctrl.DB.Table("comment_likes").
		Where("comment_id = ? AND user_id = ?", comment.ID, userID).Count(&existing)

	if existing > 0 {
		err = ctrl.DB.Exec(
			"DELETE FROM comment_likes WHERE comment_id = ? AND user_id = ?",
			comment.ID, userID,
		).Error
	} else {
		err = ctrl.DB.Exec(
			"INSERT INTO comment_likes (comment_id, user_id) VALUES (?, ?)",
			comment.ID, userID,
		).Error
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update like")
	}

	var likes int64
	ctrl.DB.Table("comment_likes").Where("comment_id = ?", comment.ID).Count(&likes)

	return helper.JsonOK(c, "ok", fiber.Map{
		"liked":       existing == 0,
		"likes_count": likes,
	})
}
