package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/owenj053/netone-backend/internal/api/dto"
	"github.com/owenj053/netone-backend/internal/auth"
	"github.com/owenj053/netone-backend/internal/service"
	apperrors "github.com/owenj053/netone-backend/pkg/util"
)

// AssetsHandler manages the asset registry.
type AssetsHandler struct {
	service *service.AssetService
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assetService *service.AssetService) *AssetsHandler {
	return &AssetsHandler{service: assetService}
}

// CreateAsset POST /assets. Manager only.
func (h *AssetsHandler) CreateAsset(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	asset, err := h.service.Create(c.UserContext(), principal.ID(), req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAssetResponse(asset)})
}

// ListAssets GET /assets.
func (h *AssetsHandler) ListAssets(c *fiber.Ctx) error {
	assets, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAssetListResponse(assets)})
}

// DeleteAsset DELETE /assets/:id. Manager only; refuses when child assets
// or tickets still reference the asset.
func (h *AssetsHandler) DeleteAsset(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	assetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), principal.ID(), assetID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
