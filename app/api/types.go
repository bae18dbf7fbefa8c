package api

import (
	"github.com/jobsift/jobsift/app/database"
	"github.com/jobsift/jobsift/app/sources"
	"github.com/jobsift/jobsift/app/tasks"
)

type Handler struct {
	jobRepo   database.JobRepository
	overlays  sources.Set
	scheduler tasks.TaskSchedulerInterface
}
