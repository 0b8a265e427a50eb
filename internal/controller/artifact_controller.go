package controller

import (
	"strconv"

	"ai-canvas-be/internal/constant"
	"ai-canvas-be/internal/dto"
	"ai-canvas-be/internal/pkg/serverutils"
	"ai-canvas-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IArtifactController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetByChat(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Push(ctx *fiber.Ctx) error
	AddVersion(ctx *fiber.Ctx) error
	ShowVersion(ctx *fiber.Ctx) error
	DeleteVersion(ctx *fiber.Ctx) error
	SetActiveVersion(ctx *fiber.Ctx) error
	GetActiveVersion(ctx *fiber.Ctx) error
}

type artifactController struct {
	artifacts service.IArtifactService
	versions  service.IVersionService
	sync      service.ISyncService
}

func NewArtifactController(
	artifacts service.IArtifactService,
	versions service.IVersionService,
	sync service.ISyncService,
) IArtifactController {
	return &artifactController{
		artifacts: artifacts,
		versions:  versions,
		sync:      sync,
	}
}

func (c *artifactController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/artifact/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Submit)
	h.Get(":id", c.Show)
	h.Put(":id", c.Rename)
	h.Delete(":id", c.Delete)
	h.Post(":id/push", c.Push)
	h.Post(":id/versions", c.AddVersion)
	h.Get(":id/versions/active", c.GetActiveVersion)
	h.Put(":id/versions/active", c.SetActiveVersion)
	h.Get(":id/versions/:index", c.ShowVersion)
	h.Delete(":id/versions/:index", c.DeleteVersion)

	byChat := r.Group("/chat/v1/:chatId/artifacts")
	byChat.Use(serverutils.JwtMiddleware)
	byChat.Get("", c.GetByChat)
}

func (c *artifactController) Submit(ctx *fiber.Ctx) error {
	var req dto.SubmitContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	artifact, outcome, err := c.artifacts.SubmitContent(
		ctx.Context(),
		req.ChatId,
		req.Title,
		constant.ArtifactType(req.Type),
		req.Content,
		req.EditedBy,
	)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit content", dto.SubmitContentResponse{
		Outcome:  string(outcome),
		Artifact: artifact,
	}))
}

func (c *artifactController) Show(ctx *fiber.Ctx) error {
	artifact, err := c.artifacts.GetArtifact(ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show artifact", artifact))
}

func (c *artifactController) GetByChat(ctx *fiber.Ctx) error {
	artifacts := c.artifacts.GetArtifacts(ctx.Params("chatId"))
	return ctx.JSON(serverutils.SuccessResponse("Success get chat artifacts", artifacts))
}

func (c *artifactController) Rename(ctx *fiber.Ctx) error {
	var req dto.RenameArtifactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.artifacts.RenameArtifact(ctx.Context(), ctx.Params("id"), req.Title); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success rename artifact", nil))
}

func (c *artifactController) Delete(ctx *fiber.Ctx) error {
	if err := c.artifacts.DeleteArtifact(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete artifact", nil))
}

func (c *artifactController) Push(ctx *fiber.Ctx) error {
	if err := c.sync.PushArtifact(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success push artifact", nil))
}

func (c *artifactController) AddVersion(ctx *fiber.Ctx) error {
	var req dto.AddVersionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	artifact, err := c.versions.AddVersion(ctx.Context(), ctx.Params("id"), req.Content, req.EditedBy)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add version", artifact))
}

func (c *artifactController) ShowVersion(ctx *fiber.Ctx) error {
	index, err := strconv.Atoi(ctx.Params("index"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid version index")
	}

	version, ok := c.versions.GetVersion(ctx.Params("id"), index)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "version not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show version", version))
}

func (c *artifactController) DeleteVersion(ctx *fiber.Ctx) error {
	index, err := strconv.Atoi(ctx.Params("index"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid version index")
	}

	if !c.versions.DeleteVersion(ctx.Context(), ctx.Params("id"), index) {
		return fiber.NewError(fiber.StatusConflict, "version cannot be deleted")
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete version", nil))
}

func (c *artifactController) SetActiveVersion(ctx *fiber.Ctx) error {
	var req dto.SetActiveVersionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if !c.versions.SetActiveVersion(ctx.Params("id"), req.Index) {
		return fiber.NewError(fiber.StatusBadRequest, "version index out of range")
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success set active version", nil))
}

func (c *artifactController) GetActiveVersion(ctx *fiber.Ctx) error {
	if _, err := c.artifacts.GetArtifact(ctx.Params("id")); err != nil {
		return err
	}
	index := c.versions.ActiveVersion(ctx.Params("id"))
	return ctx.JSON(serverutils.SuccessResponse("Success get active version", dto.ActiveVersionResponse{Index: index}))
}
