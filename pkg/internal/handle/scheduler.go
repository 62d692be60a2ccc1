package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Karin-Goldin/wedding-app/pkg/internal/jobs"
)

// SchedulerJobs lists the maintenance jobs and their last/next runs.
func SchedulerJobs(c *gin.Context) {
	sched := jobs.Current()
	if sched == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scheduler not running"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": sched.GetJobInfos()})
}
