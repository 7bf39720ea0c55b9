// FILE: internal/controller/routing_controller.go
// Controller for query-routing endpoints
package controller

import (
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type IRoutingController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type routingController struct {
	routingService service.IRoutingService
	validate       *validator.Validate
}

func NewRoutingController(routingService service.IRoutingService) IRoutingController {
	return &routingController{
		routingService: routingService,
		validate:       validator.New(),
	}
}

func (c *routingController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	chat := api.Group("/chat")
	chat.Post("/route", c.RouteQuery)
	chat.Get("/routing/stats", c.GetStats)
	chat.Get("/routing/health", c.HealthCheck)

	admin := api.Group("/admin", jwtMiddleware, serverutils.AdminOnly)
	admin.Post("/routing/cache/clear", c.ClearContextCache)
	admin.Get("/routing/hybrid-stats", c.GetHybridStats)
}

// RouteQuery decides which model should answer a query
// @Summary Route a chat query
// @Description Classifies the query and selects primary/fallback models for the session's plan
// @Tags Routing
// @Accept json
// @Produce json
// @Success 200 {object} dto.RouteQueryResponse
// @Router /api/chat/route [post]
func (c *routingController) RouteQuery(ctx *fiber.Ctx) error {
	var request dto.RouteQueryRequest
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := c.validate.Struct(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	decision, err := c.routingService.Route(ctx.Context(), &request)
	if err != nil {
		// Hybrid classifier failures surface here; there is no degraded
		// decision path once the collaborator errors.
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(502, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Query routed", decision))
}

// GetStats returns routing introspection counters
// @Summary Get routing stats
// @Tags Routing
// @Produce json
// @Success 200 {object} dto.RoutingStatsResponse
// @Router /api/chat/routing/stats [get]
func (c *routingController) GetStats(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Routing stats", c.routingService.Stats()))
}

// HealthCheck reports liveness of the routing service
// @Summary Routing health probe
// @Tags Routing
// @Produce json
// @Router /api/chat/routing/health [get]
func (c *routingController) HealthCheck(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Routing health", c.routingService.Health()))
}

// ClearContextCache wipes every session's routing context
// @Summary Clear routing context cache
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Router /api/admin/routing/cache/clear [post]
func (c *routingController) ClearContextCache(ctx *fiber.Ctx) error {
	c.routingService.ResetContextCache(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse[any]("Context cache cleared", nil))
}

// GetHybridStats proxies the hybrid classifier's performance stats
// @Summary Hybrid classifier stats
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Router /api/admin/routing/hybrid-stats [get]
func (c *routingController) GetHybridStats(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Hybrid classifier stats", c.routingService.HybridStats()))
}
