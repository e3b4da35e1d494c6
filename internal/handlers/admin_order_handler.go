package handlers

import (
	"log"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminOrderHandler handles HTTP requests for the administrative order surface.
type AdminOrderHandler struct {
	service  *services.AdminOrderService
	validate *validator.Validate
}

// NewAdminOrderHandler creates a new AdminOrderHandler.
func NewAdminOrderHandler(service *services.AdminOrderService) *AdminOrderHandler {
	return &AdminOrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the admin order routes. The router must already
// carry authentication and the admin gate.
func (h *AdminOrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleListOrders returns one filtered page over all orders.
func (h *AdminOrderHandler) HandleListOrders(c *fiber.Ctx) error {
	page, limit := pageQuery(c)
	result, err := h.service.List(services.AdminOrderListQuery{
		Page:   page,
		Limit:  limit,
		Status: models.OrderStatus(c.Query("status")),
		Search: c.Query("search"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// HandleGetOrder returns the full order detail including purchaser info.
func (h *AdminOrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	order, err := h.service.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": order})
}

// HandleUpdateOrderStatus sets an order's status, optionally with tracking info.
func (h *AdminOrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req services.AdminUpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing admin status update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	order, err := h.service.UpdateStatus(id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}
