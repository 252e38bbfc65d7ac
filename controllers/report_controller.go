package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Govind-619/BuyMeAChai/middleware"
	"github.com/Govind-619/BuyMeAChai/reports"
	"github.com/Govind-619/BuyMeAChai/repository"
	"github.com/Govind-619/BuyMeAChai/utils"
	"github.com/gin-gonic/gin"
)

// GET /api/contributions/:id/receipt
func (ctl *ChaiController) DownloadReceipt(c *gin.Context) {
	utils.LogInfo("DownloadReceipt called")
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.UnauthorizedError(middleware.MsgMissingToken, nil))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(c, "Invalid contribution id", nil)
		return
	}

	contribution, err := ctl.store.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondError(c, utils.NotFoundError("Contribution not found", err))
			return
		}
		utils.LogError("Failed to load contribution %d: %v", id, err)
		utils.InternalServerError(c, "Failed to load contribution")
		return
	}
	// Other users' contributions are reported as missing.
	if contribution.UserID != user.ID {
		utils.LogError("User %s requested receipt of contribution %d owned by %s", user.ID, id, contribution.UserID)
		utils.RespondError(c, utils.NotFoundError("Contribution not found", nil))
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteReceiptPDF(&buf, *contribution, ctl.orders.DefaultCurrency(), ctl.settings.ChaiPrice); err != nil {
		utils.LogError("Failed to render receipt %d: %v", id, err)
		utils.InternalServerError(c, "Failed to render receipt")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=chai_receipt_%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// GET /api/admin/contributions/export
func (ctl *ChaiController) ExportContributions(c *gin.Context) {
	utils.LogInfo("ExportContributions called")

	contributions, err := ctl.store.ListRecent(c.Request.Context())
	if err != nil {
		utils.LogError("Failed to list contributions for export: %v", err)
		utils.InternalServerError(c, "Failed to fetch messages")
		return
	}

	now := ctl.now()
	var buf bytes.Buffer
	if err := reports.WriteContributionsXLSX(&buf, contributions, ctl.orders.DefaultCurrency(), now); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=chai_contributions_%s.xlsx", now.Format("20060102")))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	utils.LogInfo("Exported %d contributions", len(contributions))
}
