package serializers

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"dropzone/src/models"
	"dropzone/src/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gorm.io/datatypes"
)

func tandem() models.Product {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return models.Product{
		ID:          7,
		Title:       "Tandem 101",
		Slug:        "tandem-101",
		ProductType: types.PRODUCT_TANDEM_JUMP,
		Category:    "Jumps",
		IsActive:    true,
		BasePrice:   decimal.RequireFromString("199.00"),
		Price:       decimal.RequireFromString("199.00"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestProductWithoutOptionalFields(t *testing.T) {
	p := tandem()
	raw, err := json.Marshal(Product(&p))
	require.NoError(t, err)
	body := string(raw)

	assert.Equal(t, "", gjson.Get(body, "mainImage").String())
	assert.True(t, gjson.Get(body, "gallery").IsArray())
	assert.Len(t, gjson.Get(body, "gallery").Array(), 0)
	assert.Equal(t, gjson.Null, gjson.Get(body, "duration").Type)
	assert.Equal(t, gjson.Null, gjson.Get(body, "duration_hours").Type)
	assert.Equal(t, "", gjson.Get(body, "fullDescription").String())
	assert.Equal(t, "199.00", gjson.Get(body, "price").String())
	assert.Equal(t, "199.00", gjson.Get(body, "base_price").String())
	assert.Equal(t, gjson.String, gjson.Get(body, "price").Type)
	assert.True(t, gjson.Get(body, "attributes").IsObject())
	assert.False(t, gjson.Get(body, "image_url").Exists())
}

func TestProductComputedFields(t *testing.T) {
	p := tandem()
	p.Description = "Jump from 4000m with an instructor."
	p.ImageURL = "https://cdn.example.com/tandem.jpg"
	p.DurationHours = decimal.NewNullDecimal(decimal.RequireFromString("1.5"))
	p.Attributes = datatypes.JSONMap{"altitude": 4000}

	out := Product(&p)
	assert.Equal(t, p.Description, out.FullDescription)
	assert.Equal(t, p.Description, out.Description)
	assert.Equal(t, p.ImageURL, out.MainImage)
	assert.Equal(t, []types.ProductImage{{Src: p.ImageURL, Alt: "Tandem 101"}}, out.Gallery)
	require.NotNil(t, out.Duration)
	require.NotNil(t, out.DurationHours)
	assert.Equal(t, "1.50", *out.Duration)
	assert.Equal(t, "1.50", *out.DurationHours)
	assert.Equal(t, 4000, out.Attributes["altitude"])
}

func TestPricesKeepPrecision(t *testing.T) {
	for _, price := range []string{"0.01", "199.99", "12345678.90", "99999999.99"} {
		p := tandem()
		p.Price = decimal.RequireFromString(price)
		p.BasePrice = decimal.RequireFromString(price)
		out := Product(&p)
		assert.Equal(t, price, out.Price)
		assert.Equal(t, price, out.BasePrice)
	}
}

func TestCategoryEmbedsGivenProducts(t *testing.T) {
	c := models.Category{ID: 3, Name: "Jumps", Slug: "jumps"}
	out := Category(&c, []models.Product{tandem()})
	require.Len(t, out.Products, 1)
	assert.Equal(t, "tandem-101", out.Products[0].Slug)

	empty := Category(&c, nil)
	raw, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "[]", gjson.GetBytes(raw, "products").Raw)
}

func TestSlideBackgroundURL(t *testing.T) {
	resolve := func(key string) (string, error) {
		return "http://example.com/media/" + key, nil
	}

	withBg := models.Slide{ID: 1, Title: "Sky", Text: "Freefall", Bg: "slides/sky.jpg"}
	out, err := Slide(&withBg, resolve)
	require.NoError(t, err)
	require.NotNil(t, out.Bg)
	assert.Equal(t, "http://example.com/media/slides/sky.jpg", *out.Bg)

	noBg := models.Slide{ID: 2, Title: "Ground", Text: "School"}
	out, err = Slide(&noBg, resolve)
	require.NoError(t, err)
	assert.Nil(t, out.Bg)

	_, err = Slides([]models.Slide{withBg}, func(string) (string, error) {
		return "", errors.New("bucket unavailable")
	})
	assert.Error(t, err)
}

func TestBooking(t *testing.T) {
	d, _ := types.ParseDate("2025-06-01")
	ct, _ := types.ParseClockTime("09:30")
	b := models.Booking{ID: 4, Name: "Anna", Phone: "+7 900 000 00 00", Email: "anna@example.com", Date: d, Time: ct, Service: "Tandem 101"}

	raw, err := json.Marshal(Booking(&b))
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", gjson.GetBytes(raw, "date").String())
	assert.Equal(t, "09:30:00", gjson.GetBytes(raw, "time").String())
	assert.Equal(t, "", gjson.GetBytes(raw, "comments").String())
	assert.True(t, gjson.GetBytes(raw, "created_at").Exists())
}
