package controller

import (
	"bufio"
	"context"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type ILlmController interface {
	RegisterRoutes(r fiber.Router)
	GetModels(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
	CompleteStream(ctx *fiber.Ctx) error
	GenerateImage(ctx *fiber.Ctx) error
}

type llmController struct {
	service service.ILlmService
}

func NewLlmController(service service.ILlmService) ILlmController {
	return &llmController{service: service}
}

func (c *llmController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/llm/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/models", c.GetModels)
	h.Post("/completions", c.Complete)
	h.Post("/completions/stream", c.CompleteStream)
	h.Post("/images", c.GenerateImage)
}

func (c *llmController) GetModels(ctx *fiber.Ctx) error {
	res, err := c.service.GetModels(ctx.Context())
	if err != nil {
		return serverutils.NewApiError(fiber.StatusBadGateway, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get models", res))
}

func (c *llmController) Complete(ctx *fiber.Ctx) error {
	var req dto.CompletionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Complete(ctx.Context(), &req)
	if err != nil {
		return serverutils.NewApiError(fiber.StatusBadGateway, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create completion", res))
}

func (c *llmController) CompleteStream(ctx *fiber.Ctx) error {
	var req dto.CompletionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// The stream writer runs after this handler returns, so the upstream
	// request cannot hang off the request context. The client stopping the
	// read tears the chain down instead.
	stream, err := c.service.CompleteStream(context.Background(), &req)
	if err != nil {
		return serverutils.NewApiError(fiber.StatusBadGateway, err.Error())
	}

	ctx.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer stream.Close()
		for {
			chunk, err := stream.Recv()
			if len(chunk) > 0 {
				if _, werr := w.WriteString(chunk); werr != nil {
					return
				}
				if werr := w.Flush(); werr != nil {
					return
				}
			}
			if err != nil {
				return
			}
		}
	}))

	return nil
}

func (c *llmController) GenerateImage(ctx *fiber.Ctx) error {
	var req dto.GenerateImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GenerateImage(ctx.Context(), &req)
	if err != nil {
		return serverutils.NewApiError(fiber.StatusBadGateway, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate image", res))
}
