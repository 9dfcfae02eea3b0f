package main

import (
	"dropzone/src/serializers"
	"dropzone/src/types"
	"dropzone/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const productResource = "Product"

func productHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/products/", func(ctx *gin.Context) {
			products, err := utils.ListProducts(ctx)
			if err != nil {
				respondError(ctx, productResource, err)
				return
			}
			ctx.JSON(http.StatusOK, serializers.Products(products))
		}).
		POST("/products/", func(ctx *gin.Context) {
			payload, err := readPayload(ctx)
			if err != nil {
				respondError(ctx, productResource, err)
				return
			}
			product, err := utils.CreateNewProduct(ctx, payload)
			if err != nil {
				respondError(ctx, productResource, err)
				return
			}
			ctx.JSON(http.StatusCreated, serializers.Product(product))
		}).
		GET("/products/related/:slug/", func(ctx *gin.Context) {
			var params types.SlugRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusOK, []any{})
				return
			}
			products, err := utils.GetRelatedProducts(ctx, params.Slug)
			if err != nil {
				log.Printf("Error loading related products for %q: %s\n", params.Slug, err.Error())
				respondError(ctx, productResource, err)
				return
			}
			ctx.JSON(http.StatusOK, serializers.Products(products))
		}).
		GET("/products/:slug/", func(ctx *gin.Context) {
			var params types.SlugRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": productResource + " not found"})
				return
			}
			product, err := utils.GetProductBySlug(ctx, params.Slug)
			if err != nil {
				respondError(ctx, productResource, err)
				return
			}
			ctx.JSON(http.StatusOK, serializers.Product(product))
		}).
		PUT("/products/:slug/", updateProductHandler(false)).
		PATCH("/products/:slug/", updateProductHandler(true)).
		DELETE("/products/:slug/", func(ctx *gin.Context) {
			var params types.SlugRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": productResource + " not found"})
				return
			}
			if err := utils.DeleteProduct(ctx, params.Slug); err != nil {
				respondError(ctx, productResource, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}

func updateProductHandler(partial bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var params types.SlugRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": productResource + " not found"})
			return
		}
		payload, err := readPayload(ctx)
		if err != nil {
			respondError(ctx, productResource, err)
			return
		}
		product, err := utils.UpdateProduct(ctx, params.Slug, payload, partial)
		if err != nil {
			respondError(ctx, productResource, err)
			return
		}
		ctx.JSON(http.StatusOK, serializers.Product(product))
	}
}
