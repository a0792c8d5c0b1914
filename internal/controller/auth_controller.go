package controller

import (
	"campus-connect-be/internal/dto"
	"campus-connect-be/internal/pkg/serverutils"
	"campus-connect-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Validate(ctx *fiber.Ctx) error
}

type authController struct {
	service  service.IAuthService
	validate *validator.Validate
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{
		service:  service,
		validate: validator.New(),
	}
}

func (c *authController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
	h.Post("/logout", authMiddleware, c.Logout)
	h.Get("/validate", authMiddleware, c.Validate)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.Validation("invalid request body")
	}
	if err := c.validate.Struct(&req); err != nil {
		return serverutils.Validation(err.Error())
	}

	res, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    "SUCCESS",
		"message": "Logged in",
		"data":    res,
	})
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	token := bearerToken(ctx)
	if err := c.service.Logout(ctx.UserContext(), token); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    "SUCCESS",
		"message": "Logged out",
		"data":    nil,
	})
}

func (c *authController) Validate(ctx *fiber.Ctx) error {
	token := bearerToken(ctx)
	res, err := c.service.Validate(ctx.UserContext(), token)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    "SUCCESS",
		"message": "Session valid",
		"data":    res,
	})
}

func bearerToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ctx.Query("token")
}
