package controller

import (
	"campus-connect-be/internal/dto"
	"campus-connect-be/internal/pkg/serverutils"
	"campus-connect-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type IAnnouncementController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type announcementController struct {
	service  service.IAnnouncementService
	validate *validator.Validate
}

func NewAnnouncementController(service service.IAnnouncementService) IAnnouncementController {
	return &announcementController{
		service:  service,
		validate: validator.New(),
	}
}

func (c *announcementController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/posts", authMiddleware)
	h.Post("/", c.Create)
	h.Get("/", c.List)
}

func (c *announcementController) Create(ctx *fiber.Ctx) error {
	user := serverutils.Principal(ctx)

	var req dto.CreateAnnouncementRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.Validation("invalid request body")
	}
	if err := c.validate.Struct(&req); err != nil {
		return serverutils.Validation(err.Error())
	}

	res, err := c.service.Create(ctx.UserContext(), user, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"code":    "SUCCESS",
		"message": "Announcement published",
		"data":    res,
	})
}

func (c *announcementController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    "SUCCESS",
		"message": "Announcements fetched",
		"data":    res,
	})
}
