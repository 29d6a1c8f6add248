package delivery

import (
	"net/http"
	"strconv"

	"treemap-backend/internal/partner/usecase"

	"github.com/gin-gonic/gin"
)

// PartnerHandler handles partner and sponsor HTTP requests.
type PartnerHandler struct {
	partnerUsecase usecase.PartnerUsecase
}

// NewPartnerHandler creates a new PartnerHandler.
func NewPartnerHandler(partnerUsecase usecase.PartnerUsecase) *PartnerHandler {
	return &PartnerHandler{
		partnerUsecase: partnerUsecase,
	}
}

// GetPartners lists partners
// GET /api/partners
func (h *PartnerHandler) GetPartners(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := h.partnerUsecase.Partners(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetSponsors lists sponsors
// GET /api/sponsors
func (h *PartnerHandler) GetSponsors(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := h.partnerUsecase.Sponsors(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetLogos returns the logo URLs of one partner or sponsor
// GET /api/partners/:id/logos
func (h *PartnerHandler) GetLogos(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"list": h.partnerUsecase.Logos(c.Request.Context(), c.Param("id"))})
}
