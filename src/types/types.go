package types

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ProductType string

const (
	PRODUCT_TANDEM_JUMP   ProductType = "tandem_jump"
	PRODUCT_SPECIAL_OFFER ProductType = "special_offer"
	PRODUCT_COURSE        ProductType = "course"
	PRODUCT_FLIGHT        ProductType = "flight"
	PRODUCT_SERVICE       ProductType = "service"
)

var ProductTypes = []ProductType{
	PRODUCT_TANDEM_JUMP,
	PRODUCT_SPECIAL_OFFER,
	PRODUCT_COURSE,
	PRODUCT_FLIGHT,
	PRODUCT_SERVICE,
}

func (t ProductType) IsValid() bool {
	for _, pt := range ProductTypes {
		if pt == t {
			return true
		}
	}
	return false
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type SlugRequestParams struct {
	Slug string `uri:"slug" binding:"required"`
}

// SlideRequestBody binds from JSON and from multipart forms; the background
// image travels as the "bg" file part.
type SlideRequestBody struct {
	Title string `json:"title" form:"title" binding:"required,max=255"`
	Text  string `json:"text" form:"text" binding:"required"`
}

type CategoryRequestBody struct {
	Name        string `json:"name" binding:"required,max=100"`
	Slug        string `json:"slug" binding:"required,max=100,slugfield"`
	Description string `json:"description"`
}

type ProductRequestBody struct {
	Title            string           `json:"title" binding:"required,max=200"`
	Subtitle         string           `json:"subtitle" binding:"max=200"`
	Slug             string           `json:"slug" binding:"required,max=200,slugfield"`
	ShortDescription string           `json:"short_description"`
	Description      string           `json:"description"`
	FullDescription  *string          `json:"fullDescription"`
	ProductType      ProductType      `json:"product_type" binding:"required,producttype"`
	Category         string           `json:"category" binding:"required,max=100"`
	SortOrder        *int             `json:"sort_order" binding:"omitempty,gte=0"`
	IsActive         *bool            `json:"is_active"`
	IsFeatured       *bool            `json:"is_featured"`
	BasePrice        *decimal.Decimal `json:"base_price" binding:"required"`
	Price            *decimal.Decimal `json:"price" binding:"required"`
	Attributes       map[string]any   `json:"attributes"`
	ImageURL         string           `json:"image_url" binding:"omitempty,max=200,url"`
	VideoURL         string           `json:"video_url" binding:"omitempty,max=200,url"`
	DurationHours    *decimal.Decimal `json:"duration_hours"`
	MetaTitle        string           `json:"meta_title" binding:"max=200"`
	MetaDescription  string           `json:"meta_description" binding:"max=300"`
	Keywords         string           `json:"keywords" binding:"max=255"`
	ButtonText       string           `json:"button_text" binding:"max=100"`
	ButtonLink       string           `json:"button_link" binding:"omitempty,max=200,url"`
}

type CreateBookingRequestBody struct {
	Name     string `json:"name" binding:"required,max=100"`
	Phone    string `json:"phone" binding:"required,max=20"`
	Email    string `json:"email" binding:"required,max=254,email"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
	Time     string `json:"time" binding:"required,clocktime"`
	Comments string `json:"comments"`
	Service  string `json:"service" binding:"required,max=255"`
}

type APIResponseSlide struct {
	ID    uint    `json:"id"`
	Title string  `json:"title"`
	Text  string  `json:"text"`
	Bg    *string `json:"bg"`
}

type APIResponseCategory struct {
	ID          uint                  `json:"id"`
	Name        string                `json:"name"`
	Slug        string                `json:"slug"`
	Description string                `json:"description"`
	Products    []*APIResponseProduct `json:"products"`
}

type ProductImage struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type APIResponseProduct struct {
	ID               uint           `json:"id"`
	Slug             string         `json:"slug"`
	Title            string         `json:"title"`
	Subtitle         string         `json:"subtitle"`
	ShortDescription string         `json:"short_description"`
	Description      string         `json:"description"`
	FullDescription  string         `json:"fullDescription"`
	ProductType      ProductType    `json:"product_type"`
	Category         string         `json:"category"`
	SortOrder        int            `json:"sort_order"`
	IsActive         bool           `json:"is_active"`
	IsFeatured       bool           `json:"is_featured"`
	BasePrice        string         `json:"base_price"`
	Price            string         `json:"price"`
	Attributes       map[string]any `json:"attributes"`
	MainImage        string         `json:"mainImage"`
	Gallery          []ProductImage `json:"gallery"`
	VideoURL         string         `json:"video_url"`
	Duration         *string        `json:"duration"`
	DurationHours    *string        `json:"duration_hours"`
	MetaTitle        string         `json:"meta_title"`
	MetaDescription  string         `json:"meta_description"`
	Keywords         string         `json:"keywords"`
	ButtonText       string         `json:"button_text"`
	ButtonLink       string         `json:"button_link"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type APIResponseBooking struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Date      Date      `json:"date"`
	Time      ClockTime `json:"time"`
	Comments  string    `json:"comments"`
	Service   string    `json:"service"`
	CreatedAt time.Time `json:"created_at"`
}

// Normalize trims the single-line text fields before validation.
func (b *SlideRequestBody) Normalize() {
	b.Title = strings.TrimSpace(b.Title)
}

func (b *CategoryRequestBody) Normalize() {
	b.Name = strings.TrimSpace(b.Name)
	b.Slug = strings.TrimSpace(b.Slug)
}

func (b *ProductRequestBody) Normalize() {
	b.Title = strings.TrimSpace(b.Title)
	b.Subtitle = strings.TrimSpace(b.Subtitle)
	b.Slug = strings.TrimSpace(b.Slug)
	b.Category = strings.TrimSpace(b.Category)
	b.MetaTitle = strings.TrimSpace(b.MetaTitle)
	b.Keywords = strings.TrimSpace(b.Keywords)
	b.ButtonText = strings.TrimSpace(b.ButtonText)
}

func (b *CreateBookingRequestBody) Normalize() {
	b.Name = strings.TrimSpace(b.Name)
	b.Phone = strings.TrimSpace(b.Phone)
	b.Email = strings.TrimSpace(b.Email)
	b.Date = strings.TrimSpace(b.Date)
	b.Time = strings.TrimSpace(b.Time)
	b.Service = strings.TrimSpace(b.Service)
}
