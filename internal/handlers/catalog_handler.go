package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ottlabs/ott-platform/internal/dto"
	"github.com/ottlabs/ott-platform/internal/middleware"
	"github.com/ottlabs/ott-platform/internal/services"
)

type CatalogHandler struct {
	catalog  *services.CatalogService
	activity *services.ActivityService
}

func NewCatalogHandler(catalog *services.CatalogService, activity *services.ActivityService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, activity: activity}
}

func (h *CatalogHandler) ListMovies(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	movies, total, err := h.catalog.ListMovies(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list movies",
		})
	}

	return c.JSON(dto.MovieListResponse{Movies: movies, Total: total})
}

func (h *CatalogHandler) GetMovie(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid movie id",
		})
	}

	movie, err := h.catalog.GetMovie(id)
	if err != nil {
		if errors.Is(err, services.ErrMovieNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Movie not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load movie",
		})
	}

	return c.JSON(movie)
}

// AddMovie is admin-only; it inserts the movie and broadcasts a new-content
// notification to every user.
func (h *CatalogHandler) AddMovie(c *fiber.Ctx) error {
	var req dto.CreateMovieRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	movie, notified, err := h.catalog.AddMovie(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateMovieResponse{
		Success:           true,
		Movie:             *movie,
		NotificationsSent: notified,
	})
}

func (h *CatalogHandler) Watch(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	movieID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid movie id",
		})
	}

	entry, err := h.activity.RecordWatch(userID, movieID)
	if err != nil {
		if errors.Is(err, services.ErrMovieNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Movie not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to record watch",
		})
	}

	return c.JSON(fiber.Map{"success": true, "watch": entry})
}

func (h *CatalogHandler) WatchHistory(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	history, err := h.activity.ListWatchHistory(userID, c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list watch history",
		})
	}

	return c.JSON(fiber.Map{"history": history})
}
