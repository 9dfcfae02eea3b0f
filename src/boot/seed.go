package boot

import (
	"context"
	"dropzone/src/db"
	"dropzone/src/models"
	"dropzone/src/utils"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"
)

// Fixtures is the layout of a seed file. Entries use the API field names.
type Fixtures struct {
	Categories []map[string]any `yaml:"categories"`
	Products   []map[string]any `yaml:"products"`
	Slides     []map[string]any `yaml:"slides"`
}

type SeedResult struct {
	Created int
	Updated int
}

// SeedFixtures loads path and upserts categories and products by slug and
// slides by title. Running it twice changes nothing.
func SeedFixtures(ctx context.Context, path string) (*SeedResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fixtures Fixtures
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	res := &SeedResult{}
	for i, entry := range fixtures.Categories {
		fillSlug(entry, "name")
		if err := seedCategory(ctx, entry, res); err != nil {
			return res, fmt.Errorf("categories[%d]: %w", i, err)
		}
	}
	for i, entry := range fixtures.Products {
		fillSlug(entry, "title")
		if err := seedProduct(ctx, entry, res); err != nil {
			return res, fmt.Errorf("products[%d]: %w", i, err)
		}
	}
	for i, entry := range fixtures.Slides {
		if err := seedSlide(ctx, entry, res); err != nil {
			return res, fmt.Errorf("slides[%d]: %w", i, err)
		}
	}
	log.Printf("Seeded %s: %d created, %d updated\n", path, res.Created, res.Updated)
	return res, nil
}

func fillSlug(entry map[string]any, from string) {
	if s, _ := entry["slug"].(string); s != "" {
		return
	}
	if src, ok := entry[from].(string); ok {
		entry["slug"] = slug.Make(src)
	}
}

func toPayload(entry map[string]any) (*utils.Payload, error) {
	raw, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	return utils.ParsePayload(raw)
}

func seedCategory(ctx context.Context, entry map[string]any, res *SeedResult) error {
	payload, err := toPayload(entry)
	if err != nil {
		return err
	}
	var existing models.Category
	err = db.GetDb().WithContext(ctx).Where("slug = ?", entry["slug"]).Limit(1).Find(&existing).Error
	if err != nil {
		return err
	}
	if existing.ID == 0 {
		if _, err := utils.CreateNewCategory(ctx, payload); err != nil {
			return err
		}
		res.Created++
		return nil
	}
	if _, err := utils.UpdateCategory(ctx, existing.ID, payload, false); err != nil {
		return err
	}
	res.Updated++
	return nil
}

func seedProduct(ctx context.Context, entry map[string]any, res *SeedResult) error {
	payload, err := toPayload(entry)
	if err != nil {
		return err
	}
	s, _ := entry["slug"].(string)
	_, err = utils.GetProductBySlug(ctx, s)
	switch {
	case utils.IsNotFound(err):
		if _, err := utils.CreateNewProduct(ctx, payload); err != nil {
			return err
		}
		res.Created++
	case err == nil:
		if _, err := utils.UpdateProduct(ctx, s, payload, false); err != nil {
			return err
		}
		res.Updated++
	default:
		return err
	}
	return nil
}

func seedSlide(ctx context.Context, entry map[string]any, res *SeedResult) error {
	payload, err := toPayload(entry)
	if err != nil {
		return err
	}
	var existing models.Slide
	err = db.GetDb().WithContext(ctx).Where("title = ?", entry["title"]).Limit(1).Find(&existing).Error
	if err != nil {
		return err
	}
	if existing.ID == 0 {
		if _, err := utils.CreateNewSlide(ctx, payload, nil); err != nil {
			return err
		}
		res.Created++
		return nil
	}
	if _, err := utils.UpdateSlide(ctx, existing.ID, payload, nil, false); err != nil {
		return err
	}
	res.Updated++
	return nil
}
