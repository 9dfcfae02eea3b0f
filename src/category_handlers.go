package main

import (
	"dropzone/src/serializers"
	"dropzone/src/types"
	"dropzone/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

const categoryResource = "Category"

func renderCategory(c *utils.CategoryWithProducts) *types.APIResponseCategory {
	return serializers.Category(&c.Category, c.Products)
}

func categoryHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/categories/", func(ctx *gin.Context) {
			categories, err := utils.ListCategories(ctx)
			if err != nil {
				respondError(ctx, categoryResource, err)
				return
			}
			out := make([]*types.APIResponseCategory, 0, len(categories))
			for i := range categories {
				out = append(out, renderCategory(&categories[i]))
			}
			ctx.JSON(http.StatusOK, out)
		}).
		POST("/categories/", func(ctx *gin.Context) {
			payload, err := readPayload(ctx)
			if err != nil {
				respondError(ctx, categoryResource, err)
				return
			}
			category, err := utils.CreateNewCategory(ctx, payload)
			if err != nil {
				respondError(ctx, categoryResource, err)
				return
			}
			ctx.JSON(http.StatusCreated, renderCategory(category))
		}).
		GET("/categories/:id/", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": categoryResource + " not found"})
				return
			}
			category, err := utils.GetCategory(ctx, params.ID)
			if err != nil {
				respondError(ctx, categoryResource, err)
				return
			}
			ctx.JSON(http.StatusOK, renderCategory(category))
		}).
		PUT("/categories/:id/", updateCategoryHandler(false)).
		PATCH("/categories/:id/", updateCategoryHandler(true)).
		DELETE("/categories/:id/", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": categoryResource + " not found"})
				return
			}
			if err := utils.DeleteCategory(ctx, params.ID); err != nil {
				respondError(ctx, categoryResource, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}

func updateCategoryHandler(partial bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": categoryResource + " not found"})
			return
		}
		payload, err := readPayload(ctx)
		if err != nil {
			respondError(ctx, categoryResource, err)
			return
		}
		category, err := utils.UpdateCategory(ctx, params.ID, payload, partial)
		if err != nil {
			respondError(ctx, categoryResource, err)
			return
		}
		ctx.JSON(http.StatusOK, renderCategory(category))
	}
}
