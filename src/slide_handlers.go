package main

import (
	"dropzone/src/models"
	"dropzone/src/serializers"
	"dropzone/src/types"
	"dropzone/src/utils"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

const slideResource = "Slide"

// slideInput reads either a JSON body or a multipart form whose "bg" part
// carries the background image.
func slideInput(ctx *gin.Context) (*utils.Payload, *multipart.FileHeader, error) {
	if ctx.ContentType() != gin.MIMEMultipartPOSTForm {
		payload, err := readPayload(ctx)
		return payload, nil, err
	}
	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, nil, &utils.BadRequestError{Msg: "Multipart form parse error - " + err.Error()}
	}
	values := map[string]string{}
	for _, field := range []string{"title", "text"} {
		if v, ok := form.Value[field]; ok && len(v) > 0 {
			values[field] = v[0]
		}
	}
	payload, err := utils.PayloadFromValues(values)
	if err != nil {
		return nil, nil, err
	}
	var bg *multipart.FileHeader
	if files := form.File["bg"]; len(files) > 0 {
		bg = files[0]
	}
	return payload, bg, nil
}

func renderSlide(ctx *gin.Context, status int, slide *models.Slide) {
	out, err := serializers.Slide(slide, mediaURLResolver(ctx))
	if err != nil {
		respondError(ctx, slideResource, err)
		return
	}
	ctx.JSON(status, out)
}

func slideHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/slides/", func(ctx *gin.Context) {
			slides, err := utils.ListSlides(ctx)
			if err != nil {
				respondError(ctx, slideResource, err)
				return
			}
			out, err := serializers.Slides(slides, mediaURLResolver(ctx))
			if err != nil {
				respondError(ctx, slideResource, err)
				return
			}
			ctx.JSON(http.StatusOK, out)
		}).
		POST("/slides/", func(ctx *gin.Context) {
			payload, bg, err := slideInput(ctx)
			if err != nil {
				respondError(ctx, slideResource, err)
				return
			}
			slide, err := utils.CreateNewSlide(ctx, payload, bg)
			if err != nil {
				respondError(ctx, slideResource, err)
				return
			}
			renderSlide(ctx, http.StatusCreated, slide)
		}).
		GET("/slides/:id/", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": slideResource + " not found"})
				return
			}
			slide, err := utils.GetSlide(ctx, params.ID)
			if err != nil {
				respondError(ctx, slideResource, err)
				return
			}
			renderSlide(ctx, http.StatusOK, slide)
		}).
		PUT("/slides/:id/", updateSlideHandler(false)).
		PATCH("/slides/:id/", updateSlideHandler(true)).
		DELETE("/slides/:id/", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": slideResource + " not found"})
				return
			}
			if err := utils.DeleteSlide(ctx, params.ID); err != nil {
				respondError(ctx, slideResource, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}

func updateSlideHandler(partial bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": slideResource + " not found"})
			return
		}
		payload, bg, err := slideInput(ctx)
		if err != nil {
			respondError(ctx, slideResource, err)
			return
		}
		slide, err := utils.UpdateSlide(ctx, params.ID, payload, bg, partial)
		if err != nil {
			respondError(ctx, slideResource, err)
			return
		}
		renderSlide(ctx, http.StatusOK, slide)
	}
}
