// internal/handlers/car.go
package handlers

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cappeLindo/webcars-api/internal/apperrors"
	"github.com/cappeLindo/webcars-api/internal/i18n"
	"github.com/cappeLindo/webcars-api/internal/models"
	"github.com/cappeLindo/webcars-api/internal/services"
	"github.com/cappeLindo/webcars-api/internal/utils"
)

type CarHandler struct {
	carService *services.CarService
}

func NewCarHandler(carService *services.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

// GET /cars
func (h *CarHandler) GetCars(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.CarSearchParams{
		PaginationParams: params,
	}

	if id, ok := queryUint(c, "brand_id"); ok {
		searchParams.BrandID = &id
	}
	if id, ok := queryUint(c, "category_id"); ok {
		searchParams.CategoryID = &id
	}
	if id, ok := queryUint(c, "car_model_id"); ok {
		searchParams.CarModelID = &id
	}
	if id, ok := queryUint(c, "dealership_id"); ok {
		searchParams.DealershipID = &id
	}
	if condition := c.Query("condition"); condition != "" {
		carCondition := models.CarCondition(condition)
		searchParams.Condition = &carCondition
	}
	if priceMinStr := c.Query("price_min"); priceMinStr != "" {
		if priceMin, err := strconv.ParseFloat(priceMinStr, 64); err == nil {
			searchParams.PriceMin = &priceMin
		}
	}
	if priceMaxStr := c.Query("price_max"); priceMaxStr != "" {
		if priceMax, err := strconv.ParseFloat(priceMaxStr, 64); err == nil {
			searchParams.PriceMax = &priceMax
		}
	}
	if yearStr := c.Query("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			searchParams.Year = &year
		}
	}
	if armoredStr := c.Query("armored"); armoredStr != "" {
		if armored, err := strconv.ParseBool(armoredStr); err == nil {
			searchParams.Armored = &armored
		}
	}

	cars, total, err := h.carService.SearchCars(c.Request.Context(), searchParams)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result := utils.CreatePaginationResult(cars, total, params)
	utils.SetPaginationHeaders(c, result)
	utils.PaginatedResponse(c, result)
}

// GET /cars/:id
func (h *CarHandler) GetCar(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	car, err := h.carService.GetCar(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, car)
}

// POST /cars (multipart/form-data)
func (h *CarHandler) CreateCar(c *gin.Context) {
	dealershipID, ok := utils.GetAccountIDFromContext(c)
	if !ok {
		lang := utils.GetLangFromContext(c)
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	req, err := carRequestFromForm(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	images, err := imageUploadsFromForm(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	car, err := h.carService.CreateCar(c.Request.Context(), dealershipID, req, images)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, car)
}

// PUT /cars/:id (multipart/form-data, full replace)
func (h *CarHandler) ReplaceCar(c *gin.Context) {
	dealershipID, ok := utils.GetAccountIDFromContext(c)
	if !ok {
		lang := utils.GetLangFromContext(c)
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	req, err := carRequestFromForm(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	images, err := imageUploadsFromForm(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	car, err := h.carService.ReplaceCar(c.Request.Context(), dealershipID, id, req, images)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, car)
}

// PATCH /cars/:id (multipart/form-data, partial update)
func (h *CarHandler) PatchCar(c *gin.Context) {
	dealershipID, ok := utils.GetAccountIDFromContext(c)
	if !ok {
		lang := utils.GetLangFromContext(c)
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	req, err := patchRequestFromForm(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	images, err := imageUploadsFromForm(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	deleteImageIDs := c.PostFormArray("delete_image_ids")
	if len(deleteImageIDs) == 1 && strings.Contains(deleteImageIDs[0], ",") {
		deleteImageIDs = strings.Split(deleteImageIDs[0], ",")
	}

	car, err := h.carService.PatchCar(c.Request.Context(), dealershipID, id, req, images, deleteImageIDs)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, car)
}

// DELETE /cars/:id
func (h *CarHandler) DeleteCar(c *gin.Context) {
	dealershipID, ok := utils.GetAccountIDFromContext(c)
	if !ok {
		lang := utils.GetLangFromContext(c)
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.carService.DeleteCar(c.Request.Context(), dealershipID, id); err != nil {
		utils.RespondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyCarDeleted)})
}

// GET /cars/:id/images
func (h *CarHandler) GetCarImages(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	images, err := h.carService.ListCarImages(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, images)
}

// DELETE /cars/images/:imageId
func (h *CarHandler) DeleteCarImage(c *gin.Context) {
	dealershipID, ok := utils.GetAccountIDFromContext(c)
	if !ok {
		lang := utils.GetLangFromContext(c)
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	imageID, ok := paramUint(c, "imageId")
	if !ok {
		return
	}

	if err := h.carService.DeleteCarImage(c.Request.Context(), dealershipID, imageID); err != nil {
		utils.RespondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyImageDeleted)})
}

// carRequestFromForm reads the full create/replace payload out of a
// multipart form. Dates accept RFC 3339 or plain YYYY-MM-DD.
func carRequestFromForm(c *gin.Context) (*services.CreateCarRequest, error) {
	req := &services.CreateCarRequest{
		Name:      c.PostForm("name"),
		Condition: models.CarCondition(c.PostForm("condition")),
		Details:   c.PostForm("details"),
	}

	var err error
	if req.Year, err = formInt(c, "year"); err != nil {
		return nil, err
	}
	if req.Price, err = formFloat(c, "price"); err != nil {
		return nil, err
	}
	if req.IpvaPaid, err = formBool(c, "ipva_paid"); err != nil {
		return nil, err
	}
	if req.Armored, err = formBool(c, "armored"); err != nil {
		return nil, err
	}
	if req.Mileage, err = formInt64(c, "mileage"); err != nil {
		return nil, err
	}
	if req.IpvaDate, err = formDate(c, "ipva_date"); err != nil {
		return nil, err
	}
	if req.PurchaseDate, err = formDate(c, "purchase_date"); err != nil {
		return nil, err
	}

	req.Features = formList(c, "features")

	ids := map[string]*uint{
		"color_id":        &req.ColorID,
		"wheel_size_id":   &req.WheelSizeID,
		"category_id":     &req.CategoryID,
		"brand_id":        &req.BrandID,
		"car_model_id":    &req.CarModelID,
		"fuel_type_id":    &req.FuelTypeID,
		"transmission_id": &req.TransmissionID,
	}
	for field, target := range ids {
		value, err := formUint(c, field)
		if err != nil {
			return nil, err
		}
		*target = value
	}

	return req, nil
}

// patchRequestFromForm reads only the fields present in the form, so
// absent and supplied-but-falsy stay distinguishable.
func patchRequestFromForm(c *gin.Context) (*services.PatchCarRequest, error) {
	req := &services.PatchCarRequest{}

	if value, ok := c.GetPostForm("name"); ok {
		req.Name = &value
	}
	if value, ok := c.GetPostForm("condition"); ok {
		condition := models.CarCondition(value)
		req.Condition = &condition
	}
	if value, ok := c.GetPostForm("details"); ok {
		req.Details = &value
	}
	if value, ok := c.GetPostForm("year"); ok {
		year, err := strconv.Atoi(value)
		if err != nil {
			return nil, formFieldError("year", value)
		}
		req.Year = &year
	}
	if value, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, formFieldError("price", value)
		}
		req.Price = &price
	}
	if value, ok := c.GetPostForm("mileage"); ok {
		mileage, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, formFieldError("mileage", value)
		}
		req.Mileage = &mileage
	}
	if value, ok := c.GetPostForm("ipva_paid"); ok {
		paid, err := strconv.ParseBool(value)
		if err != nil {
			return nil, formFieldError("ipva_paid", value)
		}
		req.IpvaPaid = &paid
	}
	if value, ok := c.GetPostForm("armored"); ok {
		armored, err := strconv.ParseBool(value)
		if err != nil {
			return nil, formFieldError("armored", value)
		}
		req.Armored = &armored
	}
	if value, ok := c.GetPostForm("ipva_date"); ok {
		date, err := parseDate(value)
		if err != nil {
			return nil, formFieldError("ipva_date", value)
		}
		req.IpvaDate = &date
	}
	if value, ok := c.GetPostForm("purchase_date"); ok {
		date, err := parseDate(value)
		if err != nil {
			return nil, formFieldError("purchase_date", value)
		}
		req.PurchaseDate = &date
	}
	if _, ok := c.GetPostForm("features"); ok {
		features := formList(c, "features")
		req.Features = &features
	}

	ids := map[string]**uint{
		"color_id":        &req.ColorID,
		"wheel_size_id":   &req.WheelSizeID,
		"category_id":     &req.CategoryID,
		"brand_id":        &req.BrandID,
		"car_model_id":    &req.CarModelID,
		"fuel_type_id":    &req.FuelTypeID,
		"transmission_id": &req.TransmissionID,
	}
	for field, target := range ids {
		if value, ok := c.GetPostForm(field); ok {
			id, err := strconv.ParseUint(value, 10, 32)
			if err != nil || id == 0 {
				return nil, formFieldError(field, value)
			}
			parsed := uint(id)
			*target = &parsed
		}
	}

	return req, nil
}

// imageUploadsFromForm reads every file attached under "images".
func imageUploadsFromForm(c *gin.Context) ([]services.ImageUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, apperrors.Validation("", "invalid multipart form", nil)
	}

	files := form.File["images"]
	uploads := make([]services.ImageUpload, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, apperrors.Validation("", "failed to read uploaded file "+header.Filename, nil)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, apperrors.Validation("", "failed to read uploaded file "+header.Filename, nil)
		}
		uploads = append(uploads, services.ImageUpload{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	return uploads, nil
}

func formFieldError(field, value string) error {
	return apperrors.Validation("", "invalid value for "+field,
		map[string]interface{}{"field": field, "value": value})
}

func formInt(c *gin.Context, field string) (int, error) {
	value := c.PostForm(field)
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, formFieldError(field, value)
	}
	return parsed, nil
}

func formInt64(c *gin.Context, field string) (int64, error) {
	value := c.PostForm(field)
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, formFieldError(field, value)
	}
	return parsed, nil
}

func formUint(c *gin.Context, field string) (uint, error) {
	value := c.PostForm(field)
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, formFieldError(field, value)
	}
	return uint(parsed), nil
}

func formFloat(c *gin.Context, field string) (float64, error) {
	value := c.PostForm(field)
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, formFieldError(field, value)
	}
	return parsed, nil
}

func formBool(c *gin.Context, field string) (bool, error) {
	value := c.PostForm(field)
	if value == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, formFieldError(field, value)
	}
	return parsed, nil
}

func formDate(c *gin.Context, field string) (*time.Time, error) {
	value := c.PostForm(field)
	if value == "" {
		return nil, nil
	}
	parsed, err := parseDate(value)
	if err != nil {
		return nil, formFieldError(field, value)
	}
	return &parsed, nil
}

func parseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

func formList(c *gin.Context, field string) []string {
	values := c.PostFormArray(field)
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}
	result := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func queryUint(c *gin.Context, name string) (uint, bool) {
	value := c.Query(name)
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	value := c.Param(name)
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil || parsed == 0 {
		utils.BadRequestResponse(c, "invalid "+name+" parameter", nil)
		return 0, false
	}
	return uint(parsed), true
}
