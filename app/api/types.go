package api

import (
	"github.com/fholst/issue-digest/app/config"
	"github.com/fholst/issue-digest/app/database"
	"github.com/fholst/issue-digest/app/tasks"
)

type Handler struct {
	watch        *config.WatchConfig
	client       tasks.GitHubClient
	settingsRepo database.SettingsRepository
	runRepo      database.RunRepository
	scheduler    tasks.TaskSchedulerInterface
}
