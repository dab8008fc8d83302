package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/forest-temperature-monitor/internal/dashboard"
	"github.com/i474232898/forest-temperature-monitor/internal/session"
	"github.com/i474232898/forest-temperature-monitor/internal/weather"
)

const refreshTimeout = 15 * time.Second

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, sessions *session.Manager, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/locations", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"locations": sessions.Registry().All(),
		})
	})

	v1.Get("/simulate", func(c *fiber.Ctx) error {
		var q simulateQuery
		if err := q.bind(c, sessions.Now()); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		at := time.Date(2000, 1, 1, *q.Hour, 0, 0, 0, time.UTC)
		return c.JSON(fiber.Map{
			"lat":     *q.Lat,
			"lon":     *q.Lon,
			"hour":    *q.Hour,
			"reading": weather.GenerateReading(*q.Lat, *q.Lon, at),
		})
	})

	v1.Post("/sessions", func(c *fiber.Ctx) error {
		var settings *session.Settings
		if len(c.Body()) > 0 {
			st := sessions.Defaults()
			if err := c.BodyParser(&st); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
			}
			settings = &st
		}

		s, err := sessions.Create(settings)
		if err != nil {
			return settingsError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(s.Snapshot(sessions.Now()))
	})

	withSession := func(h func(c *fiber.Ctx, s *session.Session) error) fiber.Handler {
		return func(c *fiber.Ctx) error {
			id, err := uuid.Parse(c.Params("id"))
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
			}
			s, err := sessions.Get(id)
			if err != nil {
				if errors.Is(err, session.ErrSessionNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "session not found")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "failed to load session")
			}
			return h(c, s)
		}
	}

	v1.Get("/sessions/:id", withSession(func(c *fiber.Ctx, s *session.Session) error {
		return c.JSON(s.Snapshot(sessions.Now()))
	}))

	v1.Put("/sessions/:id/settings", withSession(func(c *fiber.Ctx, s *session.Session) error {
		st := s.Settings()
		if err := c.BodyParser(&st); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := s.UpdateSettings(st); err != nil {
			return settingsError(err)
		}
		return c.JSON(s.Snapshot(sessions.Now()))
	}))

	v1.Post("/sessions/:id/refresh", withSession(func(c *fiber.Ctx, s *session.Session) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), refreshTimeout)
		defer cancel()

		now := sessions.Now()
		refreshed := s.Tick(ctx, service, now, c.QueryBool("force"))
		return c.JSON(fiber.Map{
			"refreshed": refreshed,
			"state":     s.Snapshot(now),
		})
	}))

	v1.Get("/sessions/:id/dashboard", withSession(func(c *fiber.Ctx, s *session.Session) error {
		style := c.Query("style")
		if err := validate.Var(style, "omitempty,oneof=marker plotly"); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "style must be one of: marker, plotly")
		}
		return c.JSON(dashboard.Build(s.Snapshot(sessions.Now()), style))
	}))

	v1.Get("/sessions/:id/history", withSession(func(c *fiber.Ctx, s *session.Session) error {
		name := c.Query("location", s.Settings().Location)

		entries, err := s.History(name)
		if err != nil {
			if errors.Is(err, weather.ErrUnknownLocation) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch history")
		}

		return c.JSON(fiber.Map{
			"location": name,
			"entries":  entries,
		})
	}))
}

func settingsError(err error) error {
	if errors.Is(err, weather.ErrUnknownLocation) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to apply settings")
}

// simulateQuery holds query parameters for the simulate endpoint.
type simulateQuery struct {
	Lat  *float64 `validate:"required,gte=-90,lte=90"`
	Lon  *float64 `validate:"required,gte=-180,lte=180"`
	Hour *int     `validate:"required,gte=0,lte=23"`
}

func (q *simulateQuery) bind(c *fiber.Ctx, now time.Time) error {
	var err error
	if q.Lat, err = parseFloatQuery(c, "lat"); err != nil {
		return err
	}
	if q.Lon, err = parseFloatQuery(c, "lon"); err != nil {
		return err
	}

	hour := now.Hour()
	if s := c.Query("hour"); s != "" {
		hour, err = strconv.Atoi(s)
		if err != nil {
			return errors.New("hour must be an integer")
		}
	}
	q.Hour = &hour
	return nil
}

func parseFloatQuery(c *fiber.Ctx, key string) (*float64, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.New(key + " must be a number")
	}
	return &f, nil
}
