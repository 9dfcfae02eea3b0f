package utils

import (
	"context"
	"dropzone/src/db"
	"dropzone/src/models"
	"dropzone/src/models/scopes"
	"dropzone/src/types"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const RelatedProductsLimit = 6

const productSlugTaken = "product with this slug already exists."

func ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := db.GetDb().
		WithContext(ctx).
		Model(&models.Product{}).
		Scopes(scopes.ProductOrdering).
		Find(&products).
		Error
	return products, err
}

func GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := db.GetDb().
		WithContext(ctx).
		Model(&models.Product{}).
		Scopes(scopes.WithSlug(slug)).
		First(&product).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetRelatedProducts returns up to six other products sharing the category
// of slug. An unknown slug yields an empty list.
func GetRelatedProducts(ctx context.Context, slug string) ([]models.Product, error) {
	related := []models.Product{}
	product, err := GetProductBySlug(ctx, slug)
	if err != nil {
		if IsNotFound(err) {
			return related, nil
		}
		return nil, err
	}
	err = db.GetDb().
		WithContext(ctx).
		Model(&models.Product{}).
		Scopes(
			scopes.InCategory(product.Category),
			scopes.ExcludeSlug(product.Slug),
			scopes.ProductOrdering,
		).
		Limit(RelatedProductsLimit).
		Find(&related).
		Error
	return related, err
}

func CreateNewProduct(ctx context.Context, payload *Payload) (*models.Product, error) {
	var body types.ProductRequestBody
	if err := bindProductBody(payload, &body); err != nil {
		return nil, err
	}
	product := models.Product{
		IsActive:   true,
		Attributes: datatypes.JSONMap{},
	}
	applyProductBody(&product, &body)
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	err := db.GetDb().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique(tx, &models.Product{}, "slug", product.Slug, 0, productSlugTaken); err != nil {
			return err
		}
		return tx.Create(&product).Error
	})
	if err != nil {
		return nil, duplicateKeyError(err, "slug", productSlugTaken)
	}
	log.Printf("product %q created", product.Slug)
	return &product, nil
}

// UpdateProduct applies payload to the product identified by slug. A full
// update still requires every mandatory field; optional fields the client
// left out keep their stored values in both modes.
func UpdateProduct(ctx context.Context, slug string, payload *Payload, partial bool) (*models.Product, error) {
	var product models.Product
	err := db.GetDb().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(scopes.WithSlug(slug)).First(&product).Error; err != nil {
			return err
		}
		if !partial {
			var full types.ProductRequestBody
			if err := bindProductBody(payload, &full); err != nil {
				return err
			}
		}
		body := productBodyFromModel(&product)
		if payload.Has("attributes") {
			body.Attributes = nil
		}
		if err := bindProductBody(payload, body); err != nil {
			return err
		}
		applyProductBody(&product, body)
		product.UpdatedAt = time.Now()
		if err := ensureUnique(tx, &models.Product{}, "slug", product.Slug, product.ID, productSlugTaken); err != nil {
			return err
		}
		return tx.Select("*").Save(&product).Error
	})
	if err != nil {
		return nil, duplicateKeyError(err, "slug", productSlugTaken)
	}
	return &product, nil
}

func DeleteProduct(ctx context.Context, slug string) error {
	res := db.GetDb().
		WithContext(ctx).
		Scopes(scopes.WithSlug(slug)).
		Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	log.Printf("product %q deleted", slug)
	return nil
}

// bindProductBody also enforces the DECIMAL column shapes, which the binding
// tags cannot express.
func bindProductBody(payload *Payload, body *types.ProductRequestBody) error {
	err := payload.Bind(body)
	fields, ok := asFieldErrors(err)
	if err != nil && !ok {
		return err
	}
	if fields == nil {
		fields = FieldErrors{}
	}
	if body.BasePrice != nil {
		if msg := checkDecimal(*body.BasePrice, 10, 2); msg != "" {
			fields.Add("base_price", msg)
		}
	}
	if body.Price != nil {
		if msg := checkDecimal(*body.Price, 10, 2); msg != "" {
			fields.Add("price", msg)
		}
	}
	if body.DurationHours != nil {
		if msg := checkDecimal(*body.DurationHours, 5, 2); msg != "" {
			fields.Add("duration_hours", msg)
		}
	}
	return fields.Err()
}

func productBodyFromModel(p *models.Product) *types.ProductRequestBody {
	sortOrder := p.SortOrder
	isActive := p.IsActive
	isFeatured := p.IsFeatured
	basePrice := p.BasePrice
	price := p.Price
	body := &types.ProductRequestBody{
		Title:            p.Title,
		Subtitle:         p.Subtitle,
		Slug:             p.Slug,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		ProductType:      p.ProductType,
		Category:         p.Category,
		SortOrder:        &sortOrder,
		IsActive:         &isActive,
		IsFeatured:       &isFeatured,
		BasePrice:        &basePrice,
		Price:            &price,
		Attributes:       map[string]any{},
		ImageURL:         p.ImageURL,
		VideoURL:         p.VideoURL,
		MetaTitle:        p.MetaTitle,
		MetaDescription:  p.MetaDescription,
		Keywords:         p.Keywords,
		ButtonText:       p.ButtonText,
		ButtonLink:       p.ButtonLink,
	}
	for k, v := range p.Attributes {
		body.Attributes[k] = v
	}
	if p.DurationHours.Valid {
		d := p.DurationHours.Decimal
		body.DurationHours = &d
	}
	return body
}

// applyProductBody copies a validated body onto p. fullDescription, when
// sent, takes precedence over description.
func applyProductBody(p *models.Product, body *types.ProductRequestBody) {
	p.Title = body.Title
	p.Subtitle = body.Subtitle
	p.Slug = body.Slug
	p.ShortDescription = body.ShortDescription
	p.Description = body.Description
	if body.FullDescription != nil {
		p.Description = *body.FullDescription
	}
	p.ProductType = body.ProductType
	p.Category = body.Category
	if body.SortOrder != nil {
		p.SortOrder = *body.SortOrder
	}
	if body.IsActive != nil {
		p.IsActive = *body.IsActive
	}
	if body.IsFeatured != nil {
		p.IsFeatured = *body.IsFeatured
	}
	if body.BasePrice != nil {
		p.BasePrice = *body.BasePrice
	}
	if body.Price != nil {
		p.Price = *body.Price
	}
	attrs := datatypes.JSONMap{}
	for k, v := range body.Attributes {
		attrs[k] = v
	}
	p.Attributes = attrs
	p.ImageURL = body.ImageURL
	p.VideoURL = body.VideoURL
	p.DurationHours = decimal.NullDecimal{}
	if body.DurationHours != nil {
		p.DurationHours = decimal.NewNullDecimal(*body.DurationHours)
	}
	p.MetaTitle = body.MetaTitle
	p.MetaDescription = body.MetaDescription
	p.Keywords = body.Keywords
	p.ButtonText = body.ButtonText
	p.ButtonLink = body.ButtonLink
}
