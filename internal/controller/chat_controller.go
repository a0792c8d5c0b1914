package controller

import (
	"campus-connect-be/internal/dto"
	"campus-connect-be/internal/pkg/serverutils"
	"campus-connect-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	ListMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	MarkRead(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type chatController struct {
	service  service.IChatService
	validate *validator.Validate
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{
		service:  service,
		validate: validator.New(),
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/chats", authMiddleware)
	h.Get("/", c.List)
	h.Post("/", c.Create)
	h.Get("/:id/messages", c.ListMessages)
	h.Post("/:id/messages", c.SendMessage)
	h.Post("/:id/read", c.MarkRead)
	h.Delete("/:id", c.Delete)
}

func (c *chatController) List(ctx *fiber.Ctx) error {
	user := serverutils.Principal(ctx)

	res, err := c.service.ListConversations(ctx.UserContext(), user)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    "SUCCESS",
		"message": "Conversations fetched",
		"data":    res,
	})
}

func (c *chatController) Create(ctx *fiber.Ctx) error {
	user := serverutils.Principal(ctx)

	var req dto.CreateChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.Validation("invalid request body")
	}
	if err := c.validate.Struct(&req); err != nil {
		return serverutils.Validation(err.Error())
	}

	res, err := c.service.CreateConversation(ctx.UserContext(), user, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"code":    "SUCCESS",
		"message": "Conversation created",
		"data":    res,
	})
}

func (c *chatController) ListMessages(ctx *fiber.Ctx) error {
	user := serverutils.Principal(ctx)
	chatId, err := chatIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListMessages(ctx.UserContext(), user, chatId)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    "SUCCESS",
		"message": "Messages fetched",
		"data":    res,
	})
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	user := serverutils.Principal(ctx)
	chatId, err := chatIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.Validation("invalid request body")
	}
	if err := c.validate.Struct(&req); err != nil {
		return serverutils.Validation(err.Error())
	}

	res, err := c.service.SendMessage(ctx.UserContext(), user, chatId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"code":    "SUCCESS",
		"message": "Message sent",
		"data":    res,
	})
}

func (c *chatController) MarkRead(ctx *fiber.Ctx) error {
	user := serverutils.Principal(ctx)
	chatId, err := chatIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.MarkRead(ctx.UserContext(), user, chatId)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    "SUCCESS",
		"message": "Messages marked as read",
		"data":    res,
	})
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	user := serverutils.Principal(ctx)
	chatId, err := chatIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteConversation(ctx.UserContext(), user, chatId); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    "SUCCESS",
		"message": "Conversation deleted",
		"data":    nil,
	})
}

func chatIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.Validation("invalid conversation id")
	}
	return chatId, nil
}
