package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/cart"
	cartsvc "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/service/cart"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/whatsapp"
)

// cartSlot picks the persisted cart slot for the request.
func cartSlot(c *gin.Context) string {
	if slot := c.GetHeader("X-Cart-Slot"); slot != "" {
		return slot
	}
	return cartrepo.DefaultSlot
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Qty       int    `json:"qty"`
}

type changeQtyRequest struct {
	Qty int `json:"qty"`
}

func getCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := svc.GetSummary(c.Request.Context(), cartSlot(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func addCartItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Qty == 0 {
			req.Qty = 1
		}
		if err := svc.Add(c.Request.Context(), cartSlot(c), req.ProductID, req.Qty); err != nil {
			if errors.Is(err, cartsvc.ErrQuantityRequired) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			respondError(c, err)
			return
		}
		respondCount(c, svc)
	}
}

func changeCartQtyHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req changeQtyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := svc.ChangeQty(c.Request.Context(), cartSlot(c), c.Param("productId"), req.Qty); err != nil {
			respondError(c, err)
			return
		}
		respondCount(c, svc)
	}
}

func removeCartItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Remove(c.Request.Context(), cartSlot(c), c.Param("productId")); err != nil {
			respondError(c, err)
			return
		}
		respondCount(c, svc)
	}
}

func clearCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Clear(c.Request.Context(), cartSlot(c)); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func cartLinkHandler(svc *cartsvc.Service, wa whatsapp.Builder) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := svc.GetSummary(c.Request.Context(), cartSlot(c))
		if err != nil {
			respondError(c, err)
			return
		}
		if len(summary.Lines) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}
		items := make([]whatsapp.OrderItem, 0, len(summary.Lines))
		for _, line := range summary.Lines {
			item := whatsapp.OrderItem{Name: "Produto " + line.ProductID, Qty: line.Qty}
			if line.Product != nil {
				item.Name = line.Product.Name
				item.UnitPrice = line.Product.Price
			}
			items = append(items, item)
		}
		c.JSON(http.StatusOK, gin.H{"url": wa.OrderLink(items)})
	}
}

// respondCount mirrors the cart count recomputation after every mutation.
func respondCount(c *gin.Context, svc *cartsvc.Service) {
	count, err := svc.Count(c.Request.Context(), cartSlot(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
