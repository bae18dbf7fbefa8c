package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobsift/jobsift/app/database"
	"github.com/jobsift/jobsift/app/sources"
	"github.com/jobsift/jobsift/app/tasks"
)

const defaultJobsLimit = 50
const maxJobsLimit = 500

func NewHandler(jobRepo database.JobRepository, overlays sources.Set,
	scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		jobRepo:   jobRepo,
		overlays:  overlays,
		scheduler: scheduler,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if jobCount, err := h.jobRepo.GetJobCount(); err == nil {
		health["jobs"] = jobCount
	}

	health["loaded_sources"] = len(h.overlays)

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"run": h.scheduler.Counters(),
	}

	if jobCount, err := h.jobRepo.GetJobCount(); err == nil {
		stats["total_jobs"] = jobCount
	}

	if categories, err := h.jobRepo.GetCategoryCounts(); err == nil {
		stats["categories"] = categories
	} else {
		slog.Error("Database error", "operation", "category_counts", "error", err)
	}

	if platforms, err := h.jobRepo.GetPlatformCounts(); err == nil {
		stats["platforms"] = platforms
	} else {
		slog.Error("Database error", "operation", "platform_counts", "error", err)
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) APIListJobs(c *gin.Context) {
	limit := parseQueryInt(c, "limit", defaultJobsLimit)
	if limit < 1 || limit > maxJobsLimit {
		limit = defaultJobsLimit
	}

	offset := parseQueryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	jobs, err := h.jobRepo.GetJobs(limit, offset)
	if err != nil {
		slog.Error("Database error", "operation", "get_jobs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"jobs":   jobs,
		"count":  len(jobs),
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) APIListSources(c *gin.Context) {
	list := make([]map[string]interface{}, 0, len(h.overlays))

	for _, source := range h.overlays {
		list = append(list, map[string]interface{}{
			"name":     source.Name,
			"platform": source.Platform,
			"keyword":  source.Keyword,
			"enabled":  source.IsEnabled(),
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"sources": list,
		"total":   len(list),
	})
}

func parseQueryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
