package location

import (
	"github.com/ChrisCalderwood/outdoor-run-tracker/internal/auth"

	"github.com/gofiber/fiber/v2"
)

type ingestRequest struct {
	RunID     string   `json:"runId"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/location", authMiddleware, func(c *fiber.Ctx) error {
		var req ingestRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if req.RunID == "" || req.Latitude == nil || req.Longitude == nil {
			return fiber.NewError(fiber.StatusBadRequest, "runId, latitude and longitude required")
		}
		lat, lng := *req.Latitude, *req.Longitude
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			return fiber.NewError(fiber.StatusBadRequest, "coordinates out of range")
		}

		if _, err := svc.Ingest(c.Context(), auth.Identity(c), req.RunID, lat, lng); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"message": "Location received"})
	})

	r.Get("/summary/:runId", authMiddleware, func(c *fiber.Ctx) error {
		sum, deg, err := svc.Summarize(c.Context(), auth.Identity(c), c.Params("runId"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if deg != nil {
			return c.JSON(deg)
		}
		return c.JSON(sum)
	})

	r.Get("/runs", authMiddleware, func(c *fiber.Ctx) error {
		runs, err := svc.ListRuns(c.Context(), auth.Identity(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if runs == nil {
			runs = []RunRef{}
		}
		return c.JSON(runs)
	})
}
