package controller

import (
	"ai-canvas-be/internal/dto"
	"ai-canvas-be/internal/pkg/serverutils"
	"ai-canvas-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	SetDescription(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	AppendMessage(ctx *fiber.Ctx) error
	SetActive(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	// Static route first so ":id" does not swallow it.
	h.Put("active", c.SetActive)
	h.Put(":id", c.Rename)
	h.Put(":id/description", c.SetDescription)
	h.Delete(":id", c.Delete)
	h.Get(":id/messages", c.GetMessages)
	h.Post(":id/messages", c.AppendMessage)
}

func (c *chatController) GetAll(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get all chats", c.service.GetChats()))
}

func (c *chatController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	chat := c.service.CreateChat(ctx.Context(), req.Title)
	return ctx.JSON(serverutils.SuccessResponse("Success create chat", chat))
}

func (c *chatController) Rename(ctx *fiber.Ctx) error {
	var req dto.RenameChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.RenameChat(ctx.Context(), ctx.Params("id"), req.Title); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success rename chat", nil))
}

func (c *chatController) SetDescription(ctx *fiber.Ctx) error {
	var req dto.SetDescriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.SetDescription(ctx.Context(), ctx.Params("id"), req.Description); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success update chat description", nil))
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.DeleteChat(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete chat", nil))
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	messages := c.service.GetMessages(ctx.Params("id"))
	return ctx.JSON(serverutils.SuccessResponse("Success get messages", messages))
}

func (c *chatController) AppendMessage(ctx *fiber.Ctx) error {
	var req dto.AppendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	msg, err := c.service.AppendMessage(ctx.Context(), ctx.Params("id"), req.Role, req.Content, req.StructuredData, req.ArtifactIds)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success append message", msg))
}

func (c *chatController) SetActive(ctx *fiber.Ctx) error {
	var req dto.SetActiveChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.SetActiveChat(ctx.Context(), req.ChatId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success set active chat", nil))
}
