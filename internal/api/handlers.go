package api

import (
	"time"

	"github.com/bilgisen/gossipd/internal/apikey"
	"github.com/bilgisen/gossipd/internal/favorites"
	"github.com/bilgisen/gossipd/internal/gossip"
	"github.com/bilgisen/gossipd/internal/logger"
	"github.com/bilgisen/gossipd/internal/middleware"
	"github.com/bilgisen/gossipd/internal/models"
	"github.com/bilgisen/gossipd/internal/utils"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service   *gossip.Service
	favorites *favorites.Store
	checker   *apikey.Checker
	creds     *apikey.Credentials
	now       func() time.Time
}

func NewHandlers(service *gossip.Service, favs *favorites.Store, checker *apikey.Checker, creds *apikey.Credentials) *Handlers {
	return &Handlers{
		service:   service,
		favorites: favs,
		checker:   checker,
		creds:     creds,
		now:       time.Now,
	}
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"version":   "1.0.0",
		"time":      h.now().Format(time.RFC3339),
		"favorites": h.favorites.Len(),
	})
}

// GetCatalog handles GET /api/v1/catalog
func (h *Handlers) GetCatalog(c *fiber.Ctx) error {
	return c.JSON(models.NewCatalog())
}

// GetStatus handles GET /api/v1/status
func (h *Handlers) GetStatus(c *fiber.Ctx) error {
	status := h.checker.Status(c.UserContext())
	return c.JSON(fiber.Map{
		"isValid": status.IsValid,
		"message": status.Message,
		"source":  h.creds.Source(),
	})
}

// SetAPIKey handles PUT /api/v1/apikey
func (h *Handlers) SetAPIKey(c *fiber.Ctx) error {
	req := middleware.Validated[models.APIKeyRequest](c)
	h.creds.Set(req.Key)
	h.checker.Invalidate()

	logger.Get().Info().
		Str("source", h.creds.Source()).
		Str("fingerprint", utils.Hash(req.Key)[:12]).
		Msg("Session API key set")

	return c.JSON(fiber.Map{"source": h.creds.Source()})
}

// ClearAPIKey handles DELETE /api/v1/apikey
func (h *Handlers) ClearAPIKey(c *fiber.Ctx) error {
	h.creds.Clear()
	h.checker.Invalidate()
	return c.JSON(fiber.Map{"source": h.creds.Source()})
}

// GenerateGossip handles POST /api/v1/gossip
func (h *Handlers) GenerateGossip(c *fiber.Ctx) error {
	req := middleware.Validated[models.GossipRequest](c)

	res, err := h.service.Generate(c.UserContext(), *req)
	if err != nil {
		return err
	}

	return c.JSON(res)
}

// GenerateImage handles POST /api/v1/gossip/image
func (h *Handlers) GenerateImage(c *fiber.Ctx) error {
	req := middleware.Validated[models.ImageRequest](c)

	imageURL, err := h.service.GenerateImage(c.UserContext(), req.Prompt)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"imageUrl": imageURL})
}

// ListFavorites handles GET /api/v1/favorites
func (h *Handlers) ListFavorites(c *fiber.Ctx) error {
	items := h.favorites.List()
	return c.JSON(fiber.Map{
		"total": len(items),
		"items": items,
	})
}

// GetFavorite handles GET /api/v1/favorites/:id
func (h *Handlers) GetFavorite(c *fiber.Ctx) error {
	item, ok := h.favorites.Get(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Favorite not found")
	}
	return c.JSON(item)
}

// AddFavorite handles POST /api/v1/favorites
func (h *Handlers) AddFavorite(c *fiber.Ctx) error {
	item := *middleware.Validated[models.SavedGossip](c)

	if item.Timestamp == 0 {
		item.Timestamp = h.now().UnixMilli()
	}
	if item.Theme == "" {
		item.Theme = string(models.DefaultTheme)
	}
	if item.ImageURL == "" {
		item.ImageURL = h.service.PlaceholderURL(item.ImagePrompt)
	}

	h.favorites.Add(c.UserContext(), item)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Gossip saved successfully!",
	})
}

// RemoveFavorite handles DELETE /api/v1/favorites/:id
func (h *Handlers) RemoveFavorite(c *fiber.Ctx) error {
	h.favorites.Remove(c.UserContext(), c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}
