package materialController

import (
	"classroom/database"
	"classroom/middleware"
	"classroom/models"
	"classroom/utils"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ListByClass returns a class's materials, optionally filtered by folder
func ListByClass(c *fiber.Ctx) error {
	classID, err := c.ParamsInt("classId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, uint(classID), middleware.RoleMember); !ok {
		return nil
	}

	query := database.Database.Db.Where("class_id = ?", classID)
	if folder := c.Query("folder"); folder != "" {
		query = query.Where("folder = ?", folder)
	}

	var materials []models.Material
	if err := query.Order("created_at desc").Find(&materials).Error; err != nil {
		log.Printf("Error fetching materials: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch materials!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully.", materials)
}

// Upload stores a new material file, instructor only
func Upload(c *fiber.Ctx) error {
	classID, err := c.ParamsInt("classId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, uint(classID), middleware.RoleInstructor); !ok {
		return nil
	}
	userID := c.Locals("userId").(uint)

	reqData := new(struct {
		Title    string `json:"title"`
		Tags     string `json:"tags"`
		Folder   string `json:"folder"`
		FileName string `json:"fileName"`
		FileData string `json:"fileData"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.FileName == "" || reqData.FileData == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File data is required!", nil)
	}

	fileURL, err := utils.SaveBase64File(
		fmt.Sprintf("materials/%d", classID), reqData.FileName, reqData.FileData)
	if err != nil {
		log.Printf("Error saving material file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save file!", nil)
	}

	material := models.Material{
		ClassID:    uint(classID),
		Title:      reqData.Title,
		FileURL:    fileURL,
		Folder:     reqData.Folder,
		Tags:       reqData.Tags,
		UploadedBy: userID,
	}
	if err := database.Database.Db.Create(&material).Error; err != nil {
		log.Printf("Error saving material: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Material uploaded successfully.", fiber.Map{
		"material_id": material.ID,
		"file_url":    material.FileURL,
	})
}

// Update edits material metadata and optionally replaces the file,
// instructor only
func Update(c *fiber.Ctx) error {
	materialID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid material id!", nil)
	}

	var material models.Material
	if err := database.Database.Db.First(&material, materialID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, material.ClassID, middleware.RoleInstructor); !ok {
		return nil
	}

	reqData := new(struct {
		Title    string `json:"title"`
		Tags     string `json:"tags"`
		Folder   string `json:"folder"`
		FileName string `json:"fileName"`
		FileData string `json:"fileData"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	updates := map[string]interface{}{
		"title":  reqData.Title,
		"tags":   reqData.Tags,
		"folder": reqData.Folder,
	}

	oldFile := ""
	if reqData.FileName != "" && reqData.FileData != "" {
		fileURL, err := utils.SaveBase64File(
			fmt.Sprintf("materials/%d", material.ClassID), reqData.FileName, reqData.FileData)
		if err != nil {
			log.Printf("Error saving material file: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save file!", nil)
		}
		updates["file_url"] = fileURL
		oldFile = material.FileURL
	}

	if err := database.Database.Db.Model(&models.Material{}).
		Where("id = ?", material.ID).Updates(updates).Error; err != nil {
		log.Printf("Error updating material: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update material!", nil)
	}

	utils.DeleteUploadedFile(oldFile)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material updated.", nil)
}

// Delete removes a material row and its file (best-effort), instructor only
func Delete(c *fiber.Ctx) error {
	materialID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid material id!", nil)
	}

	var material models.Material
	if err := database.Database.Db.First(&material, materialID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, material.ClassID, middleware.RoleInstructor); !ok {
		return nil
	}

	if err := database.Database.Db.Delete(&material).Error; err != nil {
		log.Printf("Error deleting material: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete material!", nil)
	}

	utils.DeleteUploadedFile(material.FileURL)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material deleted.", nil)
}
