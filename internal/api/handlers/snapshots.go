package handlers

import (
	"fmt"
	"net/http"

	"carbon-intensity/internal/api/models"
	"carbon-intensity/internal/snapshot"

	"github.com/gin-gonic/gin"
)

// SnapshotHandler lists the snapshots the dashboard can see.
type SnapshotHandler struct {
	SearchDirs []string
}

func NewSnapshotHandler(searchDirs []string) *SnapshotHandler {
	return &SnapshotHandler{SearchDirs: searchDirs}
}

// ListSnapshots handles GET /api/v1/snapshots. It reports the first search
// directory that has any snapshot, newest last.
func (h *SnapshotHandler) ListSnapshots(c *gin.Context) {
	for _, dir := range h.SearchDirs {
		entries, err := snapshot.List(dir)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "SNAPSHOT_LIST_ERROR",
					Message: fmt.Sprintf("Failed to list snapshots in %s: %v", dir, err),
				},
			})
			return
		}
		if len(entries) == 0 {
			continue
		}
		out := make([]models.SnapshotInfo, len(entries))
		for i, e := range entries {
			out[i] = models.SnapshotInfo{
				ID:            e.ID,
				Stamp:         e.Stamp,
				ProcessedFile: e.ProcessedFile,
				RawPath:       e.RawPath,
				Rows:          e.Rows,
				StartUTC:      fmtTime(e.StartUTC),
				EndUTC:        fmtTime(e.EndUTC),
			}
		}
		c.JSON(http.StatusOK, models.SnapshotsResponse{Dir: dir, Snapshots: out})
		return
	}
	c.JSON(http.StatusOK, models.SnapshotsResponse{Snapshots: []models.SnapshotInfo{}})
}

