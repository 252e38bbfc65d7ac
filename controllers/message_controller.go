package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Govind-619/BuyMeAChai/repository"
	"github.com/Govind-619/BuyMeAChai/utils"
	"github.com/gin-gonic/gin"
)

// NextCursorHeader carries the id to pass as "before" for the next page
const NextCursorHeader = "X-Next-Cursor"

// GET /api/messages
func (ctl *ChaiController) ListMessages(c *gin.Context) {
	page, err := utils.NewCursorPage(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	messages, err := ctl.store.ListPage(c.Request.Context(), page.Before, page.Limit)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.BadRequest(c, "Unknown cursor", nil)
			return
		}
		utils.LogError("Error fetching messages: %v", err)
		utils.InternalServerError(c, "Failed to fetch messages")
		return
	}

	if page.Paged() && len(messages) == page.Limit {
		c.Header(NextCursorHeader, strconv.FormatUint(uint64(messages[len(messages)-1].ID), 10))
	}
	c.JSON(http.StatusOK, messages)
}
