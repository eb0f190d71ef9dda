package adminController

import (
	"caselab/database"
	"caselab/middleware"
	"caselab/models"
	"caselab/models/clinical"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ListCategories lists all categories, alphabetically. Public endpoint.
func ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.Order("name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

// AdminCreateCategory creates a category; duplicate names conflict
func AdminCreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*struct {
		Name        string `json:"name"`
		Icon        string `json:"icon"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if err := db.Where("name = ?", reqData.Name).First(&models.Category{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category already exists!", nil)
	}

	category := models.Category{
		Name:        reqData.Name,
		Icon:        reqData.Icon,
		Description: reqData.Description,
	}
	if err := db.Create(&category).Error; err != nil {
		log.Printf("Error creating category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

// AdminUpdateCategory updates a category
func AdminUpdateCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("categoryID").(int)

	reqData, ok := c.Locals("validatedCategory").(*struct {
		Name        string `json:"name"`
		Icon        string `json:"icon"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var category models.Category
	if err := database.Database.Db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	category.Name = reqData.Name
	category.Icon = reqData.Icon
	category.Description = reqData.Description
	if err := database.Database.Db.Save(&category).Error; err != nil {
		log.Printf("Error updating category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", category)
}

// AdminDeleteCategory removes a category unless cases still reference it
func AdminDeleteCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("categoryID").(int)

	var inUse int64
	if err := database.Database.Db.Model(&clinical.Case{}).Where("category_id = ?", categoryID).Count(&inUse).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check category usage!", nil)
	}
	if inUse > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot delete category used by cases!", nil)
	}

	if err := database.Database.Db.Delete(&models.Category{}, categoryID).Error; err != nil {
		log.Printf("Error deleting category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}
