package measure

import (
	"strings"

	"yellowduck-gpx/gpx"
	"yellowduck-gpx/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"
)

func RegisterRoutes(r fiber.Router) {
	r.Post("/distance", func(c *fiber.Ctx) error {
		var req PairRequest
		if err := decodeBody(c, &req); err != nil {
			return err
		}
		return respond(c, "pair", Pair(req))
	})

	r.Post("/nearest", func(c *fiber.Ctx) error {
		var req NearestRequest
		if err := decodeBody(c, &req); err != nil {
			return err
		}
		if len(req.Waypoints) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "waypoints required")
		}
		report, ok := Nearest(req)
		if !ok {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "no waypoint at a finite distance")
		}
		return respond(c, "nearest", report)
	})

	r.Post("/route", func(c *fiber.Ctx) error {
		var req gpx.Route
		if err := decodeBody(c, &req); err != nil {
			return err
		}
		return respond(c, "route", Route(req))
	})

	r.Post("/track", func(c *fiber.Ctx) error {
		var req gpx.Track
		if err := decodeBody(c, &req); err != nil {
			return err
		}
		return respond(c, "track", Track(req))
	})

	r.Post("/document", func(c *fiber.Ctx) error {
		var req gpx.Document
		if err := decodeBody(c, &req); err != nil {
			return err
		}
		return respond(c, "document", Document(req))
	})
}

// decodeBody accepts JSON, or YAML when the request says so.
func decodeBody(c *fiber.Ctx, v any) error {
	ct := strings.ToLower(string(c.Request().Header.ContentType()))
	if strings.Contains(ct, "yaml") {
		if err := yaml.Unmarshal(c.Body(), v); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// respond fails with 422 when a result cannot be encoded, which happens for
// NaN or infinite distances.
func respond(c *fiber.Ctx, kind string, v any) error {
	metrics.DistanceComputations.WithLabelValues(kind).Inc()
	if err := c.JSON(v); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "result is not finite: "+err.Error())
	}
	return nil
}
