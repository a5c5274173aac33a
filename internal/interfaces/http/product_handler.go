package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estoquepro/estoque-api/internal/application/dto"
	"github.com/estoquepro/estoque-api/internal/application/usecase"
)

// ProductHandler expõe o catálogo de produtos.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create cadastra um produto.
// @Summary Cadastrar produto
// @Tags products
// @Accept json
// @Produce json
// @Param body body dto.CreateProductRequest true "Dados do produto"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "corpo da requisição inválido"})
	}
	if err := dto.Validate(req); err != nil {
		return writeError(c, err)
	}
	resp, err := h.uc.Create(req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List lista produtos com busca opcional.
// @Summary Listar produtos
// @Tags products
// @Produce json
// @Param search query string false "Busca por nome ou código"
// @Param limit query int false "Tamanho da página"
// @Param offset query int false "Deslocamento"
// @Success 200 {array} dto.ProductResponse
// @Router /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_QUERY", Message: "parâmetros de paginação inválidos"})
	}
	resp, err := h.uc.List(c.Query("search"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// GetByID busca um produto por ID.
// @Summary Buscar produto
// @Tags products
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
