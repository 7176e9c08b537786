package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/rentcourt/ftpr/internal/pkg/jobqueue"
)

type queueInspector interface {
	Snapshot(ctx context.Context) (jobqueue.Snapshot, error)
}

// HandleAdminQueue reports background job counts for the admin console.
func HandleAdminQueue(c *fiber.Ctx) error {
	q, ok := GetServices().Jobs.(queueInspector)
	if !ok {
		return Fail(c, fiber.StatusNotFound, CodeNotFound, "Job queue is not available.")
	}
	snap, err := q.Snapshot(c.UserContext())
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, snap)
}
