package utils

import (
	"bytes"
	"context"
	"dropzone/src/config"
	"dropzone/src/db"
	"dropzone/src/lib/storage"
	"dropzone/src/models"
	"dropzone/src/models/scopes"
	"dropzone/src/types"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
)

const slideFolder = "slides"

func ListSlides(ctx context.Context) ([]models.Slide, error) {
	slides := []models.Slide{}
	err := db.GetDb().
		WithContext(ctx).
		Scopes(scopes.InsertionOrder).
		Find(&slides).
		Error
	return slides, err
}

func GetSlide(ctx context.Context, id uint) (*models.Slide, error) {
	var slide models.Slide
	if err := db.GetDb().WithContext(ctx).Scopes(scopes.WithID(id)).First(&slide).Error; err != nil {
		return nil, err
	}
	return &slide, nil
}

// CreateNewSlide stores bg, when given, before inserting the row.
func CreateNewSlide(ctx context.Context, payload *Payload, bg *multipart.FileHeader) (*models.Slide, error) {
	var body types.SlideRequestBody
	if err := payload.Bind(&body); err != nil {
		return nil, err
	}
	slide := models.Slide{Title: body.Title, Text: body.Text}
	if bg != nil {
		key, err := saveSlideImage(ctx, bg)
		if err != nil {
			return nil, err
		}
		slide.Bg = key
	}
	if err := db.GetDb().WithContext(ctx).Create(&slide).Error; err != nil {
		if slide.Bg != "" {
			removeObject(ctx, slide.Bg)
		}
		return nil, err
	}
	log.Printf("slide %d created", slide.ID)
	return &slide, nil
}

// UpdateSlide keeps the stored image unless a new one is uploaded; the
// replaced object is removed after the row is saved.
func UpdateSlide(ctx context.Context, id uint, payload *Payload, bg *multipart.FileHeader, partial bool) (*models.Slide, error) {
	slide, err := GetSlide(ctx, id)
	if err != nil {
		return nil, err
	}
	body := types.SlideRequestBody{}
	if partial {
		body = types.SlideRequestBody{Title: slide.Title, Text: slide.Text}
	}
	if err := payload.Bind(&body); err != nil {
		return nil, err
	}
	slide.Title = body.Title
	slide.Text = body.Text
	previous := slide.Bg
	if bg != nil {
		key, err := saveSlideImage(ctx, bg)
		if err != nil {
			return nil, err
		}
		slide.Bg = key
	}
	if err := db.GetDb().WithContext(ctx).Select("*").Save(slide).Error; err != nil {
		if slide.Bg != previous {
			removeObject(ctx, slide.Bg)
		}
		return nil, err
	}
	if previous != "" && previous != slide.Bg {
		removeObject(ctx, previous)
	}
	return slide, nil
}

func DeleteSlide(ctx context.Context, id uint) error {
	slide, err := GetSlide(ctx, id)
	if err != nil {
		return err
	}
	if err := db.GetDb().WithContext(ctx).Delete(&models.Slide{}, slide.ID).Error; err != nil {
		return err
	}
	if slide.Bg != "" {
		removeObject(ctx, slide.Bg)
	}
	log.Printf("slide %d deleted", id)
	return nil
}

func saveSlideImage(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	maxSize := config.MaxUploadSize()
	img, err := storage.ReadImage(fh, maxSize)
	if err != nil {
		fields := FieldErrors{}
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			fields.Add("bg", fmt.Sprintf("Ensure this file is no larger than %d bytes.", maxSize))
			return "", fields.Err()
		case errors.Is(err, storage.ErrInvalidImage):
			fields.Add("bg", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
			return "", fields.Err()
		}
		return "", err
	}
	store := storage.GetStorage()
	if store == nil {
		return "", errors.New("media storage is not configured")
	}
	key := storage.GenerateKey(slideFolder, fh.Filename, img.Extension)
	if err := store.Save(ctx, key, bytes.NewReader(img.Data), img.ContentType); err != nil {
		return "", err
	}
	return key, nil
}

func removeObject(ctx context.Context, key string) {
	store := storage.GetStorage()
	if store == nil {
		return
	}
	if err := store.Delete(ctx, key); err != nil {
		log.Printf("could not remove media %q: %s\n", key, err.Error())
	}
}
