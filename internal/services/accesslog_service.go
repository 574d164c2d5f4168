package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/logger"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
)

// accessLogService records user actions in the append-only access log.
type accessLogService struct {
	db *gorm.DB
}

// NewAccessLogService creates a new AccessLogServicer.
func NewAccessLogService(db *gorm.DB) AccessLogServicer {
	return &accessLogService{db: db}
}

// Log appends an access log row. FirstAccess is computed here by checking
// for any prior row for the user. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *accessLogService) Log(userID uint, action string) {
	var prior int64
	if err := s.db.Model(&models.AccessLog{}).Where("user_id = ?", userID).Count(&prior).Error; err != nil {
		logger.Get().Errorw("failed to count prior access logs", "error", err, "user_id", userID)
		return
	}

	entry := &models.AccessLog{
		UserID:      userID,
		Action:      action,
		AccessTime:  time.Now(),
		FirstAccess: prior == 0,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create access log entry",
			"error", err,
			"user_id", userID,
			"action", action,
		)
	}
}

// RecentLogs returns the user's access log entries, newest first.
func (s *accessLogService) RecentLogs(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.AccessLog], error) {
	page.Defaults()

	base := s.db.Model(&models.AccessLog{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var logs []models.AccessLog
	if err := base.Scopes(pagination.Paginate(page)).
		Order("access_time DESC").
		Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(logs, page.Page, page.PageSize, totalItems)
	return &result, nil
}
