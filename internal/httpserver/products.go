package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/importer"
	productrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/product"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/service/catalog"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/whatsapp"
)

func listProductsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		criteria := catalog.Criteria{
			Availability: catalog.Availability(c.DefaultQuery("availability", string(catalog.AvailabilityAll))),
			Search:       c.Query("search"),
			Sort:         catalog.SortKey(c.DefaultQuery("sort", string(catalog.SortRecent))),
		}
		products, err := svc.List(c.Request.Context(), criteria)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": len(products), "results": products})
	}
}

func getProductHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func productLinkHandler(svc *catalog.Service, wa whatsapp.Builder) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": wa.ProductLink(p.WhatsAppTemplate, p.Label)})
	}
}

func saveProductHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalog.SaveInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		p, err := svc.Save(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		status := http.StatusOK
		if in.ID == "" {
			status = http.StatusCreated
		}
		c.JSON(status, p)
	}
}

func deleteProductHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func toggleAvailabilityHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.ToggleAvailability(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func exportHandler(repo productrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		filename := fmt.Sprintf("produtos-%s.json", time.Now().Format("2006-01-02"))
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Header("Content-Type", "application/json")
		if err := importer.Export(c.Request.Context(), repo, c.Writer); err != nil {
			respondError(c, err)
		}
	}
}

func importHandler(repo productrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := importer.NewJSON(c.Request.Body, repo).Run(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"imported": count})
	}
}
