package server

import (
	"bytes"
	"fmt"
	"net/http"
	"os/exec"
	"strconv"
	"time"

	"github.com/myos14/gymAdmin/internal/api"
	"github.com/myos14/gymAdmin/internal/dashboard"
	"github.com/myos14/gymAdmin/internal/email"
	"github.com/myos14/gymAdmin/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// pgDumpBinary is a var so tests can substitute a stand-in command.
var pgDumpBinary = "pg_dump"

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Router       /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// @Summary      Queue a test email
// @Tags         system
// @Produce      json
// @Security     BearerAuth
// @Param        email query string true "Recipient email"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/test-email [get]
func TestEmail(emailService *email.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		testEmail := c.Query("email")
		if testEmail == "" {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: "email parameter required"})
			return
		}

		if err := emailService.Send(c.Request.Context(), testEmail, "Test User", "test", "Test Email", "Email is working!"); err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: err.Error()})
			return
		}

		c.JSON(http.StatusOK, api.MessageResponse{Message: "Email queued successfully"})
	}
}

// @Summary      Queue expiry reminder emails
// @Description  Emails every member whose subscription ends within the window and who has an address on file
// @Tags         system
// @Produce      json
// @Security     BearerAuth
// @Param        days query int false "Expiry window in days (default 7)"
// @Success      200 {object} api.MessageResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/notifications/expiry-reminders [post]
func ExpiryReminders(repo dashboard.Repository, emailService *email.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		days := intQuery(c, "days", 7)

		expiring, err := repo.ExpiringSubscriptions(c.Request.Context(), days)
		if err != nil {
			logger.Errorf("Failed to list expiring subscriptions: %v", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to queue reminders"})
			return
		}

		queued := 0
		for _, sub := range expiring {
			if sub.MemberEmail == nil {
				continue
			}
			err := emailService.SendExpiryReminder(c.Request.Context(),
				*sub.MemberEmail, sub.MemberFirstName, sub.PlanName, sub.EndDate, sub.DaysRemaining)
			if err != nil {
				continue
			}
			queued++
		}

		logger.Infof("Queued %d expiry reminders (window %d days)", queued, days)
		c.JSON(http.StatusOK, api.MessageResponse{Message: "Reminders queued"})
	}
}

// @Summary      Download a database backup
// @Description  Streams a pg_dump of the database as an attachment
// @Tags         system
// @Produce      application/sql
// @Security     BearerAuth
// @Success      200 {string} string
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/backup/database [get]
func DatabaseBackup(databaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cmd := exec.CommandContext(c.Request.Context(), pgDumpBinary,
			"--no-owner", "--no-privileges", databaseURL)

		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		dump, err := cmd.Output()
		if err != nil {
			logger.Errorf("Database backup failed: %v: %s", err, stderr.String())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to create database backup"})
			return
		}

		filename := fmt.Sprintf("gymadmin_backup_%s.sql", time.Now().Format("20060102_150405"))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		c.Data(http.StatusOK, "application/sql", dump)

		logger.Infof("Database backup downloaded (%d bytes)", len(dump))
	}
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
