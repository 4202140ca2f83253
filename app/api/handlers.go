package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fholst/issue-digest/app/config"
	"github.com/fholst/issue-digest/app/database"
	"github.com/fholst/issue-digest/app/tasks"
)

func NewHandler(watch *config.WatchConfig, client tasks.GitHubClient,
	settingsRepo database.SettingsRepository, runRepo database.RunRepository,
	scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		watch:        watch,
		client:       client,
		settingsRepo: settingsRepo,
		runRepo:      runRepo,
		scheduler:    scheduler,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp":  time.Now().In(time.Local).Format(time.RFC3339),
		"repository": h.watch.Repository,
	}

	if settings, err := h.settingsRepo.LoadSettings(); err == nil {
		health["digest_issue_created"] = settings.TargetIssueID != ""
	}

	if total, posted, failed, err := h.runRepo.GetRunStats(); err == nil {
		health["runs"] = map[string]interface{}{
			"total":  total,
			"posted": posted,
			"failed": failed,
		}
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	total, posted, failed, err := h.runRepo.GetRunStats()
	if err != nil {
		slog.Error("Database error", "operation", "get_run_stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	stats := map[string]interface{}{
		"repository": h.watch.Repository,
		"runs": map[string]interface{}{
			"total":  total,
			"posted": posted,
			"failed": failed,
		},
	}

	if runs, err := h.runRepo.GetRecentRuns(1); err == nil && len(runs) > 0 {
		last := map[string]interface{}{
			"id":         runs[0].ID,
			"started_at": runs[0].StartedAt,
			"posted":     runs[0].Posted,
		}
		if runs[0].FinishedAt != nil {
			last["finished_at"] = runs[0].FinishedAt
		}
		stats["last_run"] = last
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) APIListRuns(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	runs, err := h.runRepo.GetRecentRuns(limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_recent_runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	entries := make([]map[string]interface{}, 0, len(runs))
	for _, run := range runs {
		entry := map[string]interface{}{
			"id":             run.ID,
			"started_at":     run.StartedAt,
			"window_start":   run.WindowStart,
			"window_end":     run.WindowEnd,
			"total_changes":  run.TotalChanges,
			"issues_changed": run.IssuesChanged,
			"posted":         run.Posted,
		}
		if run.FinishedAt != nil {
			entry["finished_at"] = run.FinishedAt
			entry["duration"] = run.FinishedAt.Sub(run.StartedAt).String()
		}
		if run.Error != "" {
			entry["error"] = run.Error
		}
		entries = append(entries, entry)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"runs":  entries,
		"total": len(entries),
	})
}

func (h *Handler) APIGetSettings(c *gin.Context) {
	settings, err := h.settingsRepo.LoadSettings()
	if err != nil {
		slog.Error("Database error", "operation", "load_settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"repository":      h.watch.Repository,
		"home_repository": h.watch.Home(),
		"target_issue_id": settings.TargetIssueID,
		"ignored_issues":  settings.IgnoredIssues,
		"max_post_size":   h.watch.MaxPostSize,
	})
}

func (h *Handler) APITriggerDigest(c *gin.Context) {
	task := tasks.NewDigestTask(h.watch, h.client, h.settingsRepo, h.runRepo)

	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Error enqueueing digest task", "repository", h.watch.Repository, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue digest task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Digest task enqueued successfully",
		"task": gin.H{
			"id":   task.ID,
			"type": task.Type,
		},
	})
}
