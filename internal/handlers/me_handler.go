package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type MeHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewMeHandler(db *gorm.DB, log *zap.Logger) *MeHandler {
	return &MeHandler{db: db, log: log}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID, ok := c.MustGet(middleware.ContextUserID).(uint)
	if !ok {
		httperr.Unauthorized(c, "invalid_user_id_type", "Authentication required.")
		return
	}

	ctx := c.Request.Context()

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Respond(c, h.log, err)
		return
	}

	body := gin.H{"user": user}

	if user.Role == models.RoleBarber {
		var barber models.Barber
		err := h.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&barber).Error
		switch {
		case err == nil:
			body["barber"] = barber
		case !errors.Is(err, gorm.ErrRecordNotFound):
			httperr.Respond(c, h.log, err)
			return
		}
	}

	c.JSON(http.StatusOK, body)
}
