package main

import (
	"dropzone/src/lib/storage"
	"dropzone/src/serializers"
	"dropzone/src/utils"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// respondError writes the JSON error body matching err.
func respondError(ctx *gin.Context, resource string, err error) {
	var verr *utils.ValidationError
	var bad *utils.BadRequestError
	switch {
	case errors.As(err, &verr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "fields": verr.Fields})
	case errors.As(err, &bad):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": bad.Msg})
	case utils.IsNotFound(err):
		ctx.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	default:
		log.Printf("[%s] %s %s: %s\n", resource, ctx.Request.Method, ctx.Request.URL.Path, err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func readPayload(ctx *gin.Context) (*utils.Payload, error) {
	raw, err := ctx.GetRawData()
	if err != nil {
		return nil, &utils.BadRequestError{Msg: err.Error()}
	}
	return utils.ParsePayload(raw)
}

// mediaURLResolver resolves storage keys against the current request so
// host relative URLs come back absolute.
func mediaURLResolver(ctx *gin.Context) serializers.URLResolver {
	return func(key string) (string, error) {
		store := storage.GetStorage()
		if store == nil {
			return "", errors.New("media storage is not configured")
		}
		u, err := store.URL(ctx, key)
		if err != nil {
			return "", err
		}
		return absoluteURL(ctx.Request, u), nil
	}
}

func absoluteURL(r *http.Request, u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.SplitN(proto, ",", 2)[0])
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return scheme + "://" + r.Host + u
}
