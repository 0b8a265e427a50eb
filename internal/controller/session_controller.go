package controller

import (
	"ai-canvas-be/internal/dto"
	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/pkg/serverutils"
	"ai-canvas-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Initialize(ctx *fiber.Ctx) error
	GetPreferences(ctx *fiber.Ctx) error
	UpdatePreferences(ctx *fiber.Ctx) error
	GetActiveView(ctx *fiber.Ctx) error
	SetActiveView(ctx *fiber.Ctx) error
}

type sessionController struct {
	sync        service.ISyncService
	preferences service.IPreferenceService
	chats       service.IChatService
}

func NewSessionController(
	sync service.ISyncService,
	preferences service.IPreferenceService,
	chats service.IChatService,
) ISessionController {
	return &sessionController{
		sync:        sync,
		preferences: preferences,
		chats:       chats,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("init", c.Initialize)
	h.Get("preferences", c.GetPreferences)
	h.Put("preferences", c.UpdatePreferences)
	h.Get("view", c.GetActiveView)
	h.Put("view", c.SetActiveView)
}

func (c *sessionController) Initialize(ctx *fiber.Ctx) error {
	userId, _ := ctx.Locals("user_id").(string)

	snapshot, err := c.sync.InitializeSession(ctx.Context(), userId)
	if err != nil {
		return err
	}

	// A session always has at least one chat to write into.
	c.chats.EnsureActiveChat(ctx.Context())

	return ctx.JSON(serverutils.SuccessResponse("Success initialize session", snapshot))
}

func (c *sessionController) GetPreferences(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get preferences", c.preferences.Get()))
}

func (c *sessionController) UpdatePreferences(ctx *fiber.Ctx) error {
	var req dto.UpdatePreferencesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	userId, _ := ctx.Locals("user_id").(string)
	prefs := c.preferences.Update(ctx.Context(), userId, &entity.UserPreferences{
		Name:     req.Name,
		Role:     req.Role,
		UsingFor: req.UsingFor,
		AiTraits: req.AiTraits,
	})

	return ctx.JSON(serverutils.SuccessResponse("Success update preferences", prefs))
}

func (c *sessionController) GetActiveView(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get active view", dto.ActiveViewResponse{
		View: c.preferences.ActiveView(),
	}))
}

func (c *sessionController) SetActiveView(ctx *fiber.Ctx) error {
	var req dto.SetActiveViewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	c.preferences.SetActiveView(req.View)
	return ctx.JSON(serverutils.SuccessResponse("Success set active view", dto.ActiveViewResponse{
		View: req.View,
	}))
}
