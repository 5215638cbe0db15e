package controller

import (
	"errors"
	"strconv"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Sync(ctx *fiber.Ctx) error
	GetChats(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AddMessages(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
}

type chatController struct {
	syncService    service.ISyncService
	historyService service.IHistoryService
}

func NewChatController(syncService service.ISyncService, historyService service.IHistoryService) IChatController {
	return &chatController{
		syncService:    syncService,
		historyService: historyService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/sync", c.Sync)
	h.Get("", c.GetChats)
	h.Post("", c.Create)
	h.Put(":id", c.Rename)
	h.Delete(":id", c.Delete)
	h.Post(":id/messages", c.AddMessages)
	h.Get(":id/messages", c.GetMessages)
}

func (c *chatController) Sync(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.SyncChatsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.syncService.SyncChats(ctx.Context(), userId, req.Chats); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success sync chats", nil))
}

func (c *chatController) GetChats(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	// since is an epoch-ms watermark; it must not pass through int, which is
	// 32 bits on some builds.
	since, err := strconv.ParseInt(ctx.Query("since", "0"), 10, 64)
	if err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, "invalid since parameter")
	}

	res, err := c.historyService.GetChats(ctx.Context(), userId, since)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all chats", res))
}

func (c *chatController) Create(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.CreateChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.historyService.CreateChat(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create chat", res))
}

func (c *chatController) Rename(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)
	chatId := ctx.Params("id")

	var req dto.RenameChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.historyService.RenameChat(ctx.Context(), userId, chatId, &req); err != nil {
		return mapHistoryError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success rename chat", nil))
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)
	chatId := ctx.Params("id")

	if err := c.historyService.DeleteChat(ctx.Context(), userId, chatId); err != nil {
		return mapHistoryError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete chat", nil))
}

func (c *chatController) AddMessages(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)
	chatId := ctx.Params("id")

	var req dto.AddMessagesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.historyService.AddMessages(ctx.Context(), userId, chatId, &req); err != nil {
		return mapHistoryError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success add messages", nil))
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)
	chatId := ctx.Params("id")

	res, err := c.historyService.GetMessages(ctx.Context(), userId, chatId)
	if err != nil {
		return mapHistoryError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func mapHistoryError(err error) error {
	if errors.Is(err, service.ErrChatNotFound) {
		return serverutils.NewApiError(fiber.StatusNotFound, err.Error())
	}
	return err
}
