package boot

import (
	"dropzone/src/config"
	"dropzone/src/db"
	"dropzone/src/lib"
	"dropzone/src/lib/aws"
	"dropzone/src/lib/storage"
	"dropzone/src/models"
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Models lists every persisted model in migration order.
var Models = []any{
	&models.Slide{},
	&models.Category{},
	&models.Product{},
	&models.Booking{},
}

func MigrateModels(tx *gorm.DB) error {
	return tx.AutoMigrate(Models...)
}

func InitDb() *gorm.DB {
	db := db.GetDb()
	if err := MigrateModels(db); err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}
	return db
}

// InitStorage selects the media backend from MEDIA_BACKEND. An S3 backend
// that cannot be configured falls back to local files.
func InitStorage() storage.Storage {
	var s storage.Storage
	if config.MediaBackend() == config.MEDIA_BACKEND_S3 {
		bucket := config.GetString("S3_ASSETS_BUCKET", "")
		s3s := aws.NewS3StorageFromEnv(bucket, config.GetString("S3_PUBLIC_URL", ""), config.S3URLExpiry())
		if bucket != "" && s3s != nil {
			s = s3s
			log.Printf("Media stored in S3 bucket %s\n", bucket)
		} else {
			log.Println("S3 media backend unavailable, using local storage")
		}
	}
	if s == nil {
		s = storage.NewLocalStorage(config.MediaRoot(), config.MediaURL())
		log.Printf("Media stored under %s\n", config.MediaRoot())
	}
	storage.NewStorage(s)
	return s
}

// InitRedis returns nil when no redis is configured.
func InitRedis() *redis.Client {
	rdb := lib.GetRedisClient()
	if rdb == nil {
		log.Println("[redis] REDIS_HOST not set, booking throttle disabled")
	}
	return rdb
}
