package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solecare/services/catalog"
)

// GetServicesHandler returns the static cleaning catalog and wash packs.
func GetServicesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"services":        catalog.Services(),
		"washPacks":       catalog.WashPacks(),
		"repaintUnitCost": catalog.RepaintUnitCost,
	})
}
