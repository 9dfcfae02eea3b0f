// Package serializers maps stored records onto their public JSON shapes.
// Every field is listed explicitly; nothing is derived by reflection.
package serializers

import (
	"dropzone/src/models"
	"dropzone/src/types"

	"github.com/shopspring/decimal"
)

const decimalPlaces = 2

// URLResolver turns a storage key into an absolute URL.
type URLResolver func(key string) (string, error)

func Slide(s *models.Slide, resolve URLResolver) (*types.APIResponseSlide, error) {
	out := &types.APIResponseSlide{
		ID:    s.ID,
		Title: s.Title,
		Text:  s.Text,
	}
	if s.Bg != "" && resolve != nil {
		u, err := resolve(s.Bg)
		if err != nil {
			return nil, err
		}
		out.Bg = &u
	}
	return out, nil
}

func Slides(slides []models.Slide, resolve URLResolver) ([]*types.APIResponseSlide, error) {
	out := make([]*types.APIResponseSlide, 0, len(slides))
	for i := range slides {
		s, err := Slide(&slides[i], resolve)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Category expects products to be the records whose category equals c.Name.
func Category(c *models.Category, products []models.Product) *types.APIResponseCategory {
	return &types.APIResponseCategory{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Products:    Products(products),
	}
}

func Product(p *models.Product) *types.APIResponseProduct {
	out := &types.APIResponseProduct{
		ID:               p.ID,
		Slug:             p.Slug,
		Title:            p.Title,
		Subtitle:         p.Subtitle,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		FullDescription:  p.Description,
		ProductType:      p.ProductType,
		Category:         p.Category,
		SortOrder:        p.SortOrder,
		IsActive:         p.IsActive,
		IsFeatured:       p.IsFeatured,
		BasePrice:        FormatDecimal(p.BasePrice),
		Price:            FormatDecimal(p.Price),
		Attributes:       map[string]any{},
		MainImage:        p.ImageURL,
		Gallery:          []types.ProductImage{},
		VideoURL:         p.VideoURL,
		MetaTitle:        p.MetaTitle,
		MetaDescription:  p.MetaDescription,
		Keywords:         p.Keywords,
		ButtonText:       p.ButtonText,
		ButtonLink:       p.ButtonLink,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	for k, v := range p.Attributes {
		out.Attributes[k] = v
	}
	if p.ImageURL != "" {
		out.Gallery = append(out.Gallery, types.ProductImage{Src: p.ImageURL, Alt: p.Title})
	}
	if p.DurationHours.Valid {
		d := FormatDecimal(p.DurationHours.Decimal)
		dh := d
		out.Duration = &d
		out.DurationHours = &dh
	}
	return out
}

func Products(products []models.Product) []*types.APIResponseProduct {
	out := make([]*types.APIResponseProduct, 0, len(products))
	for i := range products {
		out = append(out, Product(&products[i]))
	}
	return out
}

func Booking(b *models.Booking) *types.APIResponseBooking {
	return &types.APIResponseBooking{
		ID:        b.ID,
		Name:      b.Name,
		Phone:     b.Phone,
		Email:     b.Email,
		Date:      b.Date,
		Time:      b.Time,
		Comments:  b.Comments,
		Service:   b.Service,
		CreatedAt: b.CreatedAt,
	}
}

func Bookings(bookings []models.Booking) []*types.APIResponseBooking {
	out := make([]*types.APIResponseBooking, 0, len(bookings))
	for i := range bookings {
		out = append(out, Booking(&bookings[i]))
	}
	return out
}

// FormatDecimal renders a stored decimal with its column scale.
func FormatDecimal(d decimal.Decimal) string {
	return d.StringFixed(decimalPlaces)
}
