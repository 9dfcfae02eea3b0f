package main

import (
	"context"
	"dropzone/src/boot"
	"dropzone/src/config"
	"dropzone/src/lib/storage"
	"dropzone/src/middlewares"
	"dropzone/src/utils"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

const apiPrefix = "/api"

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.HandleMethodNotAllowed = true
	// Forwarded headers are only honoured from TRUSTED_PROXIES; none by default.
	if err := router.SetTrustedProxies(config.GetList("TRUSTED_PROXIES")); err != nil {
		log.Printf("Invalid TRUSTED_PROXIES, trusting none: %s\n", err.Error())
		router.SetTrustedProxies(nil)
	}
	router.Use(middlewares.SecureHeaders)
	router.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": fmt.Sprintf("Method %q not allowed.", ctx.Request.Method)})
	})
	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
	})
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		if config.MaintenanceMode() {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
	})
	return g
}

func corsMiddleware() gin.HandlerFunc {
	origins := config.GetList("CORS_ALLOWED_ORIGINS")
	if !config.IsProd() && len(origins) == 0 {
		return cors.Default()
	}
	cc := cors.DefaultConfig()
	cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
	cc.AllowHeaders = append(cc.AllowHeaders, "Origin")
	cc.AllowAllOrigins = false
	cc.AllowOrigins = origins
	if len(origins) == 0 {
		cc.AllowOriginFunc = func(origin string) bool {
			log.Printf("Origin rejected: %s\n", origin)
			return false
		}
	}
	return cors.New(cc)
}

func apiGroup(g *gin.Engine) *gin.RouterGroup {
	return g.Group(apiPrefix)
}

// registerRoutes mounts every resource. rdb may be nil.
func registerRoutes(router *gin.Engine, rdb *redis.Client) {
	api := apiGroup(router)
	slideHandlers(api)
	productHandlers(api)
	categoryHandlers(api)
	bookingHandlers(api, middlewares.BookingThrottle(rdb, config.BookingRateLimit(), config.BookingRateWindow()))

	if local, ok := storage.GetStorage().(*storage.LocalStorage); ok && strings.HasPrefix(local.BaseURL, "/") {
		router.Static(local.BaseURL, local.Root)
	}
}

func initLogger() {
	if !config.GetBool("LOG_TO_FILE", false) {
		return
	}
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	if err := os.MkdirAll(path.Dir(apiLogs), 0o755); err != nil {
		log.Printf("Could not create log directory: %s\n", err.Error())
		return
	}
	gin.ForceConsoleColor()

	f, err := os.Create(apiLogs)
	if err != nil {
		log.Printf("Could not open %s, gin logs to stdout only: %s\n", apiLogs, err.Error())
		gin.DefaultWriter = os.Stdout
	} else {
		gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := config.APIEnv()
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			log.Printf("No .env loaded: %s\n", err.Error())
		}
	}
	if config.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	initLogger()

	boot.InitDb()
	boot.InitStorage()
	rdb := boot.InitRedis()
	utils.RegisterValidators()

	if seedFile := config.GetString("SEED_FILE", ""); seedFile != "" {
		if _, err := boot.SeedFixtures(context.Background(), seedFile); err != nil {
			log.Printf("Error seeding %s: %s\n", seedFile, err.Error())
		}
	}

	router := setupRouter()
	router.Use(corsMiddleware())
	router = maintenanceModeMiddleware(router)
	registerRoutes(router, rdb)

	addr := ":" + config.Port()
	log.Printf("Listening on %s\n", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server stopped: %s\n", err.Error())
	}
}
