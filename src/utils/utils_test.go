package utils

import (
	"bytes"
	"context"
	"dropzone/src/db"
	"dropzone/src/db/dbtest"
	"dropzone/src/lib/storage"
	"dropzone/src/models"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"mime/multipart"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type UtilsSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *UtilsSuite) SetupSuite() {
	RegisterValidators()
	s.ctx = context.Background()
}

func (s *UtilsSuite) SetupTest() {
	gdb, err := dbtest.Open(fmt.Sprintf("utils_%d", time.Now().UnixNano()),
		&models.Slide{}, &models.Category{}, &models.Product{}, &models.Booking{})
	s.Require().NoError(err)
	db.NewDB(gdb)
}

func (s *UtilsSuite) payload(body string) *Payload {
	p, err := ParsePayload([]byte(body))
	s.Require().NoError(err)
	return p
}

func (s *UtilsSuite) createProduct(slug, category string, sortOrder int) *models.Product {
	p, err := CreateNewProduct(s.ctx, s.payload(fmt.Sprintf(`{
		"title": %q, "slug": %q, "product_type": "tandem_jump",
		"category": %q, "sort_order": %d, "base_price": "100.00", "price": "90.00"
	}`, "Product "+slug, slug, category, sortOrder)))
	s.Require().NoError(err)
	return p
}

func (s *UtilsSuite) fields(err error) FieldErrors {
	s.Require().Error(err)
	fields, ok := asFieldErrors(err)
	s.Require().True(ok, "expected validation error, got %v", err)
	return fields
}

func (s *UtilsSuite) TestCreateProductDefaults() {
	p := s.createProduct("tandem", "Jumps", 0)
	s.True(p.IsActive)
	s.False(p.IsFeatured)
	s.NotNil(p.Attributes)
	s.False(p.DurationHours.Valid)
	s.False(p.CreatedAt.IsZero())
	s.Equal(p.CreatedAt, p.UpdatedAt)
}

func (s *UtilsSuite) TestCreateInactiveProduct() {
	p, err := CreateNewProduct(s.ctx, s.payload(`{
		"title": "Hidden", "slug": "hidden", "product_type": "flight", "category": "Flights",
		"base_price": "10", "price": "10", "is_active": false, "is_featured": true
	}`))
	s.Require().NoError(err)
	stored, err := GetProductBySlug(s.ctx, p.Slug)
	s.Require().NoError(err)
	s.False(stored.IsActive)
	s.True(stored.IsFeatured)
}

func (s *UtilsSuite) TestCreateProductValidation() {
	_, err := CreateNewProduct(s.ctx, s.payload(`{"title": "X", "slug": "bad slug", "product_type": "balloon", "price": "1.005"}`))
	fields := s.fields(err)
	s.Contains(fields, "slug")
	s.Equal([]string{`"balloon" is not a valid choice.`}, fields["product_type"])
	s.Equal([]string{"This field is required."}, fields["category"])
	s.Equal([]string{"This field is required."}, fields["base_price"])
	s.Equal([]string{"Ensure that there are no more than 2 decimal places."}, fields["price"])
}

func (s *UtilsSuite) TestCreateProductRejectsNonNumericPrice() {
	_, err := CreateNewProduct(s.ctx, s.payload(`{"price": "abc"}`))
	fields := s.fields(err)
	s.Equal([]string{"A valid number is required."}, fields["price"])
}

func (s *UtilsSuite) TestDuplicateSlug() {
	s.createProduct("tandem", "Jumps", 0)
	_, err := CreateNewProduct(s.ctx, s.payload(`{
		"title": "Other", "slug": "tandem", "product_type": "course",
		"category": "Jumps", "base_price": 1, "price": 1
	}`))
	fields := s.fields(err)
	s.Equal([]string{"product with this slug already exists."}, fields["slug"])
}

func (s *UtilsSuite) TestPatchKeepsOtherFields() {
	p := s.createProduct("tandem", "Jumps", 3)
	updated, err := UpdateProduct(s.ctx, "tandem", s.payload(`{"price": "79.50"}`), true)
	s.Require().NoError(err)
	s.Equal("79.50", updated.Price.StringFixed(2))
	s.Equal(p.Title, updated.Title)
	s.Equal(3, updated.SortOrder)
	s.Equal(p.CreatedAt.Unix(), updated.CreatedAt.Unix())
	s.False(updated.UpdatedAt.Before(p.UpdatedAt))
}

func (s *UtilsSuite) TestPatchReplacesAttributesAndClearsDuration() {
	s.createProduct("tandem", "Jumps", 0)
	_, err := UpdateProduct(s.ctx, "tandem", s.payload(`{"attributes": {"a": 1, "b": 2}, "duration_hours": "1.5"}`), true)
	s.Require().NoError(err)

	updated, err := UpdateProduct(s.ctx, "tandem", s.payload(`{"attributes": {"c": 3}, "duration_hours": null}`), true)
	s.Require().NoError(err)
	s.Len(updated.Attributes, 1)
	s.Contains(updated.Attributes, "c")
	s.False(updated.DurationHours.Valid)
}

func (s *UtilsSuite) TestFullDescriptionWins() {
	s.createProduct("tandem", "Jumps", 0)
	updated, err := UpdateProduct(s.ctx, "tandem", s.payload(`{"description": "short", "fullDescription": "long"}`), true)
	s.Require().NoError(err)
	s.Equal("long", updated.Description)
}

func (s *UtilsSuite) TestPutRequiresMandatoryFields() {
	s.createProduct("tandem", "Jumps", 0)
	_, err := UpdateProduct(s.ctx, "tandem", s.payload(`{"price": "10.00"}`), false)
	fields := s.fields(err)
	s.Contains(fields, "title")
	s.Contains(fields, "slug")
}

func (s *UtilsSuite) TestUpdateUnknownProduct() {
	_, err := UpdateProduct(s.ctx, "missing", s.payload(`{}`), true)
	s.True(IsNotFound(err))
	s.True(IsNotFound(DeleteProduct(s.ctx, "missing")))
}

func (s *UtilsSuite) TestRelatedProducts() {
	s.createProduct("main", "Jumps", 0)
	for i := 0; i < 8; i++ {
		s.createProduct(fmt.Sprintf("jump-%d", i), "Jumps", 8-i)
	}
	s.createProduct("course", "Courses", 0)

	related, err := GetRelatedProducts(s.ctx, "main")
	s.Require().NoError(err)
	s.Len(related, RelatedProductsLimit)
	s.Equal("jump-7", related[0].Slug)
	for _, p := range related {
		s.NotEqual("main", p.Slug)
		s.Equal("Jumps", p.Category)
	}

	none, err := GetRelatedProducts(s.ctx, "missing")
	s.Require().NoError(err)
	s.NotNil(none)
	s.Len(none, 0)
}

func (s *UtilsSuite) TestListProductsOrdering() {
	s.createProduct("c", "Jumps", 2)
	s.createProduct("b", "Jumps", 1)
	s.createProduct("a", "Jumps", 1)
	products, err := ListProducts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(products, 3)
	s.Equal([]string{"a", "b", "c"}, []string{products[0].Slug, products[1].Slug, products[2].Slug})
}

func (s *UtilsSuite) TestCategoryProductsAreComputed() {
	c, err := CreateNewCategory(s.ctx, s.payload(`{"name": "Jumps", "slug": "jumps"}`))
	s.Require().NoError(err)
	s.Len(c.Products, 0)

	s.createProduct("tandem", "Jumps", 0)
	s.createProduct("lower", "jumps", 0)
	got, err := GetCategory(s.ctx, c.Category.ID)
	s.Require().NoError(err)
	s.Require().Len(got.Products, 1)
	s.Equal("tandem", got.Products[0].Slug)

	renamed, err := UpdateCategory(s.ctx, c.Category.ID, s.payload(`{"name": "Skydiving"}`), true)
	s.Require().NoError(err)
	s.Len(renamed.Products, 0)

	s.Require().NoError(DeleteCategory(s.ctx, c.Category.ID))
	p, err := GetProductBySlug(s.ctx, "tandem")
	s.Require().NoError(err)
	s.Equal("Jumps", p.Category)
}

func (s *UtilsSuite) TestCategoryUniqueness() {
	_, err := CreateNewCategory(s.ctx, s.payload(`{"name": "Jumps", "slug": "jumps"}`))
	s.Require().NoError(err)
	_, err = CreateNewCategory(s.ctx, s.payload(`{"name": "Jumps", "slug": "jumps"}`))
	fields := s.fields(err)
	s.Equal([]string{"category with this name already exists."}, fields["name"])
	s.Equal([]string{"category with this slug already exists."}, fields["slug"])
}

func (s *UtilsSuite) TestBookings() {
	var ids []uint
	for i := 0; i < 3; i++ {
		b, err := CreateNewBooking(s.ctx, s.payload(fmt.Sprintf(`{
			"name": %q, "phone": "+79000000000", "email": %q,
			"date": "2025-06-01", "time": "09:30", "service": "Tandem"
		}`, faker.Name(), faker.Email())))
		s.Require().NoError(err)
		ids = append(ids, b.ID)
	}
	bookings, err := ListBookings(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(bookings, 3)
	s.Equal(ids[2], bookings[0].ID)
	s.Equal(ids[0], bookings[2].ID)

	got, err := GetBooking(s.ctx, ids[0])
	s.Require().NoError(err)
	s.Equal("2025-06-01", got.Date.String())
	s.Equal("09:30:00", got.Time.String())
}

func (s *UtilsSuite) TestBookingValidation() {
	_, err := CreateNewBooking(s.ctx, s.payload(`{"name": "A", "phone": "1", "email": "nope", "date": "01.06.2025", "time": "25:00", "service": "x"}`))
	fields := s.fields(err)
	s.Equal([]string{"Enter a valid email address."}, fields["email"])
	s.Contains(fields, "date")
	s.Contains(fields, "time")
}

func (s *UtilsSuite) TestSlidesWithoutImage() {
	slide, err := CreateNewSlide(s.ctx, s.payload(`{"title": "Sky", "text": "Freefall"}`), nil)
	s.Require().NoError(err)
	s.Equal("", slide.Bg)

	updated, err := UpdateSlide(s.ctx, slide.ID, s.payload(`{"text": "Canopy"}`), nil, true)
	s.Require().NoError(err)
	s.Equal("Sky", updated.Title)
	s.Equal("Canopy", updated.Text)

	_, err = UpdateSlide(s.ctx, slide.ID, s.payload(`{"text": "Canopy"}`), nil, false)
	s.Contains(s.fields(err), "title")

	s.Require().NoError(DeleteSlide(s.ctx, slide.ID))
	_, err = GetSlide(s.ctx, slide.ID)
	s.True(IsNotFound(err))
}

func (s *UtilsSuite) TestPatchRejectsNullOnRequiredFields() {
	s.createProduct("tandem", "Jumps", 0)

	_, err := UpdateProduct(s.ctx, "tandem", s.payload(`{"title": null, "category": null}`), true)
	fields := s.fields(err)
	s.Equal([]string{"This field may not be null."}, fields["title"])
	s.Equal([]string{"This field may not be null."}, fields["category"])

	_, err = UpdateProduct(s.ctx, "tandem", s.payload(`{"price": null}`), true)
	s.Equal([]string{"This field may not be null."}, s.fields(err)["price"])

	stored, err := GetProductBySlug(s.ctx, "tandem")
	s.Require().NoError(err)
	s.Equal("Product tandem", stored.Title)
	s.Equal("Jumps", stored.Category)

	_, err = UpdateProduct(s.ctx, "tandem", s.payload(`{"fullDescription": null, "attributes": null, "duration_hours": null, "unknown": null}`), true)
	s.NoError(err)
}

func (s *UtilsSuite) TestNullRejectedOnCategoryAndSlide() {
	category, err := CreateNewCategory(s.ctx, s.payload(`{"name": "Jumps", "slug": "jumps"}`))
	s.Require().NoError(err)
	_, err = UpdateCategory(s.ctx, category.Category.ID, s.payload(`{"description": null}`), true)
	s.Contains(s.fields(err), "description")

	slide, err := CreateNewSlide(s.ctx, s.payload(`{"title": "Sky", "text": "Freefall"}`), nil)
	s.Require().NoError(err)
	_, err = UpdateSlide(s.ctx, slide.ID, s.payload(`{"text": null}`), nil, true)
	s.Equal([]string{"This field may not be null."}, s.fields(err)["text"])
}

func pngUpload(s *UtilsSuite) *multipart.FileHeader {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("bg", "sky.png")
	s.Require().NoError(err)
	s.Require().NoError(png.Encode(fw, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	s.Require().NoError(mw.Close())
	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(1 << 20)
	s.Require().NoError(err)
	return form.File["bg"][0]
}

func storedFiles(s *UtilsSuite, root string) []string {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	s.Require().NoError(err)
	return files
}

func (s *UtilsSuite) TestFailedSlideInsertRemovesImage() {
	root := s.T().TempDir()
	storage.NewStorage(storage.NewLocalStorage(root, "/media/"))
	s.Require().NoError(db.GetDb().Migrator().DropTable(&models.Slide{}))

	_, err := CreateNewSlide(s.ctx, s.payload(`{"title": "Sky", "text": "Freefall"}`), pngUpload(s))
	s.Require().Error(err)
	s.Empty(storedFiles(s, root))
}

func (s *UtilsSuite) TestSlideImageStoredOnCreate() {
	root := s.T().TempDir()
	storage.NewStorage(storage.NewLocalStorage(root, "/media/"))

	slide, err := CreateNewSlide(s.ctx, s.payload(`{"title": "Sky", "text": "Freefall"}`), pngUpload(s))
	s.Require().NoError(err)
	s.NotEmpty(slide.Bg)
	s.Len(storedFiles(s, root), 1)
}

func (s *UtilsSuite) TestParsePayload() {
	_, err := ParsePayload([]byte(`{"title":`))
	var bad *BadRequestError
	s.ErrorAs(err, &bad)

	_, err = ParsePayload([]byte(`[1, 2]`))
	s.ErrorAs(err, &bad)

	p, err := ParsePayload(nil)
	s.Require().NoError(err)
	s.False(p.Has("title"))
}

func TestUtilsSuite(t *testing.T) {
	suite.Run(t, new(UtilsSuite))
}

func TestCheckDecimal(t *testing.T) {
	cases := map[string]string{
		"199.99":       "",
		"99999999.99":  "",
		"0":            "",
		"-5.5":         "",
		"1.234":        "Ensure that there are no more than 2 decimal places.",
		"123456789.00": "Ensure that there are no more than 10 digits in total.",
		"123456789":    "Ensure that there are no more than 8 digits before the decimal point.",
	}
	for in, want := range cases {
		if got := checkDecimal(decimal.RequireFromString(in), 10, 2); got != want {
			t.Errorf("checkDecimal(%s) = %q, want %q", in, got, want)
		}
	}
}
