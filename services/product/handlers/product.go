package handlers

import (
	"context"

	"seller-marketplace/shared/config"
	"seller-marketplace/shared/models"
	"seller-marketplace/shared/redis"
	"seller-marketplace/shared/store"
	"seller-marketplace/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type ProductHandler struct {
	config     *config.Config
	products   store.Products
	categories store.Categories
	cache      *redis.Cache
	log        zerolog.Logger
}

func NewProductHandler(cfg *config.Config, st *store.Store, cache *redis.Cache, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		config:     cfg,
		products:   st.Products,
		categories: st.Categories,
		cache:      cache,
		log:        log,
	}
}

// @Summary List category types
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /categoriesType [get]
func (h *ProductHandler) GetCategories(c *fiber.Ctx) error {
	ctx := c.UserContext()
	categories, err := redis.Remember(ctx, h.cache, h.log, redis.CategoriesKey, h.config.Redis.CategoriesTTL,
		func() ([]models.Category, error) { return h.categories.List(ctx) })
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// @Summary List products in a category
// @Tags products
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {array} models.Product
// @Router /category/{id} [get]
func (h *ProductHandler) GetCategoryProducts(c *fiber.Ctx) error {
	products, err := h.products.ListByCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// @Summary Add product
// @Description Store a seller's product listing. The document is stored as sent.
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.Product true "Product"
// @Success 200 {object} models.InsertResult
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /categories [post]
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}

	ctx := c.UserContext()
	result, err := h.products.Insert(ctx, &product)
	if err != nil {
		return err
	}
	if product.Advertise {
		h.invalidateAdvertised(ctx)
	}
	return c.JSON(result)
}

// @Summary List own products
// @Tags products
// @Security BearerAuth
// @Produce json
// @Param email query string true "Seller email, must match the token"
// @Success 200 {array} models.Product
// @Failure 403 {object} utils.Response
// @Router /myproducts [get]
func (h *ProductHandler) GetMyProducts(c *fiber.Ctx) error {
	products, err := h.products.ListByOwner(c.UserContext(), c.Query("email"))
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// @Summary Delete product
// @Tags products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.DeleteResult
// @Router /product/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	return h.deleteProduct(c)
}

// @Summary Advertise product
// @Description Set advertise=true. An unknown id creates a stub product.
// @Tags products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.UpdateResult
// @Router /product/{id} [put]
func (h *ProductHandler) AdvertiseProduct(c *fiber.Ctx) error {
	ctx := c.UserContext()
	result, err := h.products.SetAdvertised(ctx, models.ID(c.Params("id")))
	if err != nil {
		return err
	}
	h.invalidateAdvertised(ctx)
	return c.JSON(result)
}

// @Summary List advertised products
// @Tags products
// @Produce json
// @Success 200 {array} models.Product
// @Router /advertiseproducts [get]
func (h *ProductHandler) GetAdvertisedProducts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	products, err := redis.Remember(ctx, h.cache, h.log, redis.AdvertisedKey, h.config.Redis.AdvertisedTTL,
		func() ([]models.Product, error) { return h.products.ListAdvertised(ctx) })
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// @Summary Report product
// @Description Set report=true. An unknown id creates a stub product.
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.UpdateResult
// @Router /productReport/{id} [put]
func (h *ProductHandler) ReportProduct(c *fiber.Ctx) error {
	ctx := c.UserContext()
	result, err := h.products.SetReported(ctx, models.ID(c.Params("id")))
	if err != nil {
		return err
	}
	h.invalidateAdvertised(ctx)
	return c.JSON(result)
}

// @Summary List reported products
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Product
// @Router /showReports [get]
func (h *ProductHandler) GetReportedProducts(c *fiber.Ctx) error {
	products, err := h.products.ListReported(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// @Summary Delete reported product
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.DeleteResult
// @Router /reportedproduct/{id} [delete]
func (h *ProductHandler) DeleteReportedProduct(c *fiber.Ctx) error {
	return h.deleteProduct(c)
}

func (h *ProductHandler) deleteProduct(c *fiber.Ctx) error {
	ctx := c.UserContext()
	result, err := h.products.Delete(ctx, models.ID(c.Params("id")))
	if err != nil {
		return err
	}
	if result.DeletedCount > 0 {
		h.invalidateAdvertised(ctx)
	}
	return c.JSON(result)
}

func (h *ProductHandler) invalidateAdvertised(ctx context.Context) {
	redis.Invalidate(ctx, h.cache, h.log, redis.AdvertisedKey)
}
