package controller

import (
	"errors"
	"net/http"
	"strconv"

	"cafedir/database"
	"cafedir/form"
	"cafedir/logger"
	"cafedir/model"
	"cafedir/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxSheetSize = 5 << 20

func (h *Handler) Home(c *gin.Context) {
	cafes, err := database.FindAll[model.Cafe](c.Request.Context(), h.db)
	if err != nil {
		h.internalError(c, "Failed to fetch cafes", err)
		return
	}
	h.render(c, http.StatusOK, "index.html", gin.H{"cafes": cafes})
}

func (h *Handler) GetCafeByID(c *gin.Context) {
	cafe, ok := h.loadCafe(c)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, "cafe.html", gin.H{"title": cafe.Name, "cafe": cafe})
}

// loadCafe resolves the :id path parameter. It writes the 404 or 500 page
// itself and reports false when the handler should stop.
func (h *Handler) loadCafe(c *gin.Context) (*model.Cafe, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		h.notFound(c, "Cafe not found")
		return nil, false
	}

	cafe, err := database.FindByID[model.Cafe](c.Request.Context(), h.db, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.notFound(c, "Cafe not found")
		} else {
			h.internalError(c, "Failed to fetch cafe", err)
		}
		return nil, false
	}
	return cafe, true
}

func (h *Handler) Search(c *gin.Context) {
	data := gin.H{"title": "Search", "form": form.SearchForm{}, "errors": form.FieldErrors(nil)}
	if !submitted(c) {
		h.render(c, http.StatusOK, "search.html", data)
		return
	}

	f, fe := form.ValidateSearch(postValues(c))
	data["form"] = f
	if fe != nil {
		data["errors"] = fe
		h.render(c, http.StatusOK, "search.html", data)
		return
	}

	cafes, err := database.FindWhere[model.Cafe](c.Request.Context(), h.db, "location = ?", f.Loc)
	if err != nil {
		h.internalError(c, "Failed to search cafes", err)
		return
	}

	data["cafes"] = cafes
	data["searched"] = true
	h.render(c, http.StatusOK, "search.html", data)
}

func (h *Handler) AddCafe(c *gin.Context) {
	data := gin.H{"title": "Add cafe", "form": form.CafeForm{}, "errors": form.FieldErrors(nil)}
	if !submitted(c) {
		h.render(c, http.StatusOK, "add_cafe.html", data)
		return
	}

	f, fe := form.ValidateCafe(postValues(c))
	if fe != nil {
		data["form"] = f
		data["errors"] = fe
		h.render(c, http.StatusOK, "add_cafe.html", data)
		return
	}

	cafe := f.Cafe(h.currency)
	if err := database.Insert(c.Request.Context(), h.db, &cafe); err != nil {
		h.internalError(c, "Failed to create cafe", err)
		return
	}
	h.metrics.CafesCreated.Inc()

	logger.FromGin(c).Info("cafe added",
		zap.Uint("cafe_id", cafe.ID),
		zap.Uint("user_id", utils.CurrentIdentity(c).UserID),
	)
	utils.Redirect(c, cafePath(cafe.ID))
}

func (h *Handler) EditCafe(c *gin.Context) {
	cafe, ok := h.loadCafe(c)
	if !ok {
		return
	}

	data := gin.H{"title": "Edit " + cafe.Name, "cafe": cafe, "errors": form.FieldErrors(nil)}
	if !submitted(c) {
		data["form"] = form.EditCafeFormFrom(cafe, h.currency)
		h.render(c, http.StatusOK, "edit_cafe.html", data)
		return
	}

	f, fe := form.ValidateEditCafe(postValues(c))
	if fe != nil {
		data["form"] = f
		data["errors"] = fe
		h.render(c, http.StatusOK, "edit_cafe.html", data)
		return
	}

	if err := database.Update(c.Request.Context(), h.db, cafe, f.Columns(h.currency)); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.notFound(c, "Cafe not found")
			return
		}
		h.internalError(c, "Failed to update cafe", err)
		return
	}

	logger.FromGin(c).Info("cafe edited",
		zap.Uint("cafe_id", cafe.ID),
		zap.Uint("user_id", utils.CurrentIdentity(c).UserID),
	)
	utils.Redirect(c, cafePath(cafe.ID))
}

// BulkAddCafes imports every valid row of an uploaded spreadsheet.
func (h *Handler) BulkAddCafes(c *gin.Context) {
	log := logger.FromGin(c)
	data := gin.H{"title": "Add cafe", "form": form.CafeForm{}, "errors": form.FieldErrors(nil)}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.AddFlash(c, "Excel file is required")
		h.render(c, http.StatusBadRequest, "add_cafe.html", data)
		return
	}
	if fileHeader.Size > maxSheetSize {
		utils.AddFlash(c, "Excel file exceeds 5MB limit")
		h.render(c, http.StatusBadRequest, "add_cafe.html", data)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.internalError(c, "Unable to open Excel file", err)
		return
	}
	defer file.Close()

	cafes, skipped, err := parseCafeSheet(file, h.currency)
	if err != nil {
		log.Info("rejected spreadsheet", zap.Error(err))
		utils.AddFlash(c, "Failed to parse Excel file")
		h.render(c, http.StatusBadRequest, "add_cafe.html", data)
		return
	}
	for _, s := range skipped {
		log.Info("skipped spreadsheet row", zap.Int("row", s.Row), zap.String("reason", s.Reason))
	}

	if len(cafes) == 0 {
		utils.AddFlash(c, "No valid rows found")
		h.render(c, http.StatusBadRequest, "add_cafe.html", data)
		return
	}

	if err := database.InsertBatch(c.Request.Context(), h.db, cafes); err != nil {
		h.internalError(c, "Failed to insert cafes", err)
		return
	}
	h.metrics.CafesCreated.Add(float64(len(cafes)))

	log.Info("spreadsheet imported", zap.Int("count", len(cafes)), zap.Int("skipped", len(skipped)))
	utils.AddFlash(c, "Imported "+strconv.Itoa(len(cafes))+" cafés")
	utils.Redirect(c, "/")
}

func (h *Handler) ExportCafes(c *gin.Context) {
	cafes, err := database.FindAll[model.Cafe](c.Request.Context(), h.db)
	if err != nil {
		h.internalError(c, "Failed to fetch cafes", err)
		return
	}

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="cafes.xlsx"`)
	c.Status(http.StatusOK)
	if err := writeCafeSheet(c.Writer, cafes); err != nil {
		logger.FromGin(c).Error("Failed to write spreadsheet", zap.Error(err))
	}
}

func cafePath(id uint) string {
	return "/cafe/" + strconv.FormatUint(uint64(id), 10)
}
