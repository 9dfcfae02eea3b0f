package utils

import (
	"context"
	"dropzone/src/db"
	"dropzone/src/models"
	"dropzone/src/models/scopes"
	"dropzone/src/types"
	"log"

	"gorm.io/gorm"
)

const (
	categoryNameTaken = "category with this name already exists."
	categorySlugTaken = "category with this slug already exists."
)

// CategoryWithProducts pairs a category with the products whose category
// column equals its name, read at query time.
type CategoryWithProducts struct {
	Category models.Category
	Products []models.Product
}

func ListCategories(ctx context.Context) ([]CategoryWithProducts, error) {
	var categories []models.Category
	tx := db.GetDb().WithContext(ctx)
	if err := tx.Scopes(scopes.InsertionOrder).Find(&categories).Error; err != nil {
		return nil, err
	}
	out := make([]CategoryWithProducts, 0, len(categories))
	for _, c := range categories {
		products, err := categoryProducts(tx, c.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, CategoryWithProducts{Category: c, Products: products})
	}
	return out, nil
}

func GetCategory(ctx context.Context, id uint) (*CategoryWithProducts, error) {
	tx := db.GetDb().WithContext(ctx)
	var category models.Category
	if err := tx.Scopes(scopes.WithID(id)).First(&category).Error; err != nil {
		return nil, err
	}
	products, err := categoryProducts(tx, category.Name)
	if err != nil {
		return nil, err
	}
	return &CategoryWithProducts{Category: category, Products: products}, nil
}

func CreateNewCategory(ctx context.Context, payload *Payload) (*CategoryWithProducts, error) {
	var body types.CategoryRequestBody
	if err := payload.Bind(&body); err != nil {
		return nil, err
	}
	category := models.Category{
		Name:        body.Name,
		Slug:        body.Slug,
		Description: body.Description,
	}
	err := db.GetDb().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategoryUnique(tx, &category); err != nil {
			return err
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, duplicateKeyError(err, NonFieldErrors, "category with this name or slug already exists.")
	}
	log.Printf("category %q created", category.Slug)
	return GetCategory(ctx, category.ID)
}

// UpdateCategory renames in place; products keep their old category text.
func UpdateCategory(ctx context.Context, id uint, payload *Payload, partial bool) (*CategoryWithProducts, error) {
	var category models.Category
	err := db.GetDb().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(scopes.WithID(id)).First(&category).Error; err != nil {
			return err
		}
		body := types.CategoryRequestBody{}
		if partial {
			body = types.CategoryRequestBody{
				Name:        category.Name,
				Slug:        category.Slug,
				Description: category.Description,
			}
		} else if !payload.Has("description") {
			body.Description = category.Description
		}
		if err := payload.Bind(&body); err != nil {
			return err
		}
		category.Name = body.Name
		category.Slug = body.Slug
		category.Description = body.Description
		if err := ensureCategoryUnique(tx, &category); err != nil {
			return err
		}
		return tx.Select("*").Save(&category).Error
	})
	if err != nil {
		return nil, duplicateKeyError(err, NonFieldErrors, "category with this name or slug already exists.")
	}
	return GetCategory(ctx, category.ID)
}

// DeleteCategory leaves products untouched.
func DeleteCategory(ctx context.Context, id uint) error {
	res := db.GetDb().
		WithContext(ctx).
		Scopes(scopes.WithID(id)).
		Delete(&models.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	log.Printf("category %d deleted", id)
	return nil
}

func ensureCategoryUnique(tx *gorm.DB, c *models.Category) error {
	fields := FieldErrors{}
	for _, check := range []struct {
		column, value, msg string
	}{
		{"name", c.Name, categoryNameTaken},
		{"slug", c.Slug, categorySlugTaken},
	} {
		err := ensureUnique(tx, &models.Category{}, check.column, check.value, c.ID, check.msg)
		if more, ok := asFieldErrors(err); ok {
			fields.Merge(more)
		} else if err != nil {
			return err
		}
	}
	return fields.Err()
}

func categoryProducts(tx *gorm.DB, name string) ([]models.Product, error) {
	products := []models.Product{}
	err := tx.
		Model(&models.Product{}).
		Scopes(scopes.InCategory(name), scopes.ProductOrdering).
		Find(&products).
		Error
	return products, err
}
