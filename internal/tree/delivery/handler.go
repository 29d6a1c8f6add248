package delivery

import (
	"errors"
	"net/http"
	"strconv"

	treedomain "treemap-backend/internal/tree/domain"
	"treemap-backend/internal/tree/repository"
	"treemap-backend/internal/tree/usecase"
	"treemap-backend/pkg/nocodb"

	"github.com/gin-gonic/gin"
)

// TreeHandler handles tree, location and planting HTTP requests.
type TreeHandler struct {
	treeUsecase usecase.TreeUsecase
}

// NewTreeHandler creates a new TreeHandler.
func NewTreeHandler(treeUsecase usecase.TreeUsecase) *TreeHandler {
	return &TreeHandler{
		treeUsecase: treeUsecase,
	}
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

// notFound reports whether err is a NocoDB 404.
func notFound(err error) bool {
	var apiErr *nocodb.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// GetTrees lists tree records
// GET /api/trees?limit=25&offset=0
func (h *TreeHandler) GetTrees(c *gin.Context) {
	limit, offset := pagination(c)

	page, err := h.treeUsecase.ListTrees(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetTreeByID returns a single tree record
// GET /api/trees/:id
func (h *TreeHandler) GetTreeByID(c *gin.Context) {
	tree, err := h.treeUsecase.GetTree(c.Request.Context(), c.Param("id"))
	if err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tree not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tree)
}

// SearchTrees filters trees by query parameters
// GET /api/trees/search?species=oak&health_status=healthy
func (h *TreeHandler) SearchTrees(c *gin.Context) {
	var criteria treedomain.TreeSearch
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.treeUsecase.SearchTrees(c.Request.Context(), criteria)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

// CreateTree inserts a tree record
// POST /api/trees
func (h *TreeHandler) CreateTree(c *gin.Context) {
	var tree treedomain.TreeInfo
	if err := c.ShouldBindJSON(&tree); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.treeUsecase.CreateTree(c.Request.Context(), &tree)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateTree patches a tree record
// PATCH /api/trees/:id
func (h *TreeHandler) UpdateTree(c *gin.Context) {
	var tree treedomain.TreeInfo
	if err := c.ShouldBindJSON(&tree); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tree.ID = c.Param("id")

	updated, err := h.treeUsecase.UpdateTree(c.Request.Context(), &tree)
	if err != nil {
		if errors.Is(err, repository.ErrMissingID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteTree removes a tree record
// DELETE /api/trees/:id
func (h *TreeHandler) DeleteTree(c *gin.Context) {
	if err := h.treeUsecase.DeleteTree(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// CountTrees returns the number of tree records
// GET /api/trees/count
func (h *TreeHandler) CountTrees(c *gin.Context) {
	count, err := h.treeUsecase.CountTrees(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetLocations lists locations from the map view
// GET /api/locations?limit=25&offset=0
func (h *TreeHandler) GetLocations(c *gin.Context) {
	limit, offset := pagination(c)

	page, err := h.treeUsecase.ListLocations(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetLocationByID returns a single location
// GET /api/locations/:id
func (h *TreeHandler) GetLocationByID(c *gin.Context) {
	location, err := h.treeUsecase.GetLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, location)
}

// GetLocationsByTree lists the locations of one tree; no matches yield an
// empty list
// GET /api/trees/:id/locations
func (h *TreeHandler) GetLocationsByTree(c *gin.Context) {
	locations := h.treeUsecase.LocationsByTree(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"list": locations})
}

// CreateLocation inserts a location
// POST /api/locations
func (h *TreeHandler) CreateLocation(c *gin.Context) {
	var location treedomain.Location
	if err := c.ShouldBindJSON(&location); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.treeUsecase.CreateLocation(c.Request.Context(), &location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateLocation patches a location
// PATCH /api/locations/:id
func (h *TreeHandler) UpdateLocation(c *gin.Context) {
	var location treedomain.Location
	if err := c.ShouldBindJSON(&location); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	location.ID = c.Param("id")

	updated, err := h.treeUsecase.UpdateLocation(c.Request.Context(), &location)
	if err != nil {
		if errors.Is(err, repository.ErrMissingID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteLocation removes a location
// DELETE /api/locations/:id
func (h *TreeHandler) DeleteLocation(c *gin.Context) {
	if err := h.treeUsecase.DeleteLocation(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// PlantTree records a planting and links it to its user, location and tree
// POST /api/plantings
func (h *TreeHandler) PlantTree(c *gin.Context) {
	var req usecase.PlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	planted, err := h.treeUsecase.PlantTree(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, planted)
}

// GetPlantedLocations lists the locations linked to one planting
// GET /api/plantings/:id/locations
func (h *TreeHandler) GetPlantedLocations(c *gin.Context) {
	locations, err := h.treeUsecase.PlantedLocations(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": locations})
}
