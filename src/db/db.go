package db

import (
	"dropzone/src/config"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func GetDb() *gorm.DB {
	if db != nil {
		return db
	}
	_db, err := gorm.Open(postgres.Open(config.GetDSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Printf("Error connecting to database: %s\n", err.Error())
		panic(err)
	}
	sqlDB, err := _db.DB()
	if err != nil {
		log.Fatalf("Error establishing connection to database: %s\n", err.Error())
	}
	sqlDB.SetMaxIdleConns(config.GetInt("DATABASE_MAX_IDLE_CONNS", 10))
	sqlDB.SetMaxOpenConns(config.GetInt("DATABASE_MAX_OPEN_CONNS", 100))

	db = _db
	return _db
}

func NewDB(newdb *gorm.DB) {
	db = newdb
}
