package tracking

import (
	"errors"

	"yellowduck-gpx/gpx"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/sessions", authMiddleware, func(c *fiber.Ctx) error {
		var req struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}
		return c.Status(fiber.StatusCreated).JSON(svc.StartSession(req.Name))
	})

	r.Post("/sessions/:id/points", authMiddleware, func(c *fiber.Ctx) error {
		var req gpx.TrackPoint
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		event, err := svc.AddPoint(c.Params("id"), req)
		if err != nil {
			return httpError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(event)
	})

	r.Post("/sessions/:id/end", authMiddleware, func(c *fiber.Ctx) error {
		session, err := svc.EndSession(c.Params("id"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(session)
	})

	r.Get("/sessions/:id", func(c *fiber.Ctx) error {
		session, err := svc.Session(c.Params("id"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(session)
	})

	r.Get("/sessions/:id/summary", func(c *fiber.Ctx) error {
		summary, err := svc.Summary(c.Params("id"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(summary)
	})

	r.Get("/sessions/:id/points", func(c *fiber.Ctx) error {
		points, err := svc.Points(c.Params("id"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(points)
	})

	r.Get("/sessions/:id/track", func(c *fiber.Ctx) error {
		track, err := svc.Track(c.Params("id"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(track)
	})
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrSessionEnded):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
