package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thedailylaw/dailylaw-be/repository"
	"github.com/thedailylaw/dailylaw-be/service"
	"github.com/thedailylaw/dailylaw-be/types"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// BillHandler exposes the pipeline's output records for consumers.
type BillHandler struct {
	repo        repository.BillRepo
	categorizer *service.Categorizer
}

func NewBillHandler(repo repository.BillRepo, categorizer *service.Categorizer) *BillHandler {
	return &BillHandler{
		repo:        repo,
		categorizer: categorizer,
	}
}

func (h *BillHandler) HandleListBills(c *gin.Context) {
	var req types.PaginateBillsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid pagination parameters",
		})
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 20
	}

	bills, total, err := h.repo.Paginate(c.Request.Context(), req.Page, req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Failed to list bills",
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data: types.BillListResponse{
			Bills: bills,
			Total: total,
			Page:  req.Page,
			Limit: req.Limit,
		},
	})
}

func (h *BillHandler) HandleGetBill(c *gin.Context) {
	slug := c.Param("slug")

	bill, err := h.repo.GetBySlug(c.Request.Context(), slug)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, types.DataResponse{
			Status:  "error",
			Message: "Bill not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Failed to load bill",
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   bill,
	})
}

func (h *BillHandler) HandleListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data: types.CategoryListResponse{
			Categories: h.categorizer.Categories(),
		},
	})
}

// HandleBillsByCategory pages through stored bills and keeps the ones whose
// computed categories include the requested id. Uncategorized bills never
// appear on topic listings.
func (h *BillHandler) HandleBillsByCategory(c *gin.Context) {
	id := c.Param("id")
	if _, ok := types.GetCategoryByID(h.categorizer.Categories(), id); !ok {
		c.JSON(http.StatusNotFound, types.DataResponse{
			Status:  "error",
			Message: "Unknown category",
		})
		return
	}

	var req types.PaginateBillsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid pagination parameters",
		})
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 20
	}

	bills, _, err := h.repo.Paginate(c.Request.Context(), req.Page, req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Failed to list bills",
		})
		return
	}

	matched := make([]*types.BillRecord, 0)
	for _, bill := range bills {
		for _, cat := range h.categorizer.Categorize(bill) {
			if cat.ID == id {
				matched = append(matched, bill)
				break
			}
		}
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data: types.BillListResponse{
			Bills: matched,
			Total: int64(len(matched)),
			Page:  req.Page,
			Limit: req.Limit,
		},
	})
}
