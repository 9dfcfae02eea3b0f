package scopes

import "gorm.io/gorm"

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func WithSlug(slug string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("slug = ?", slug)
	}
}

func ExcludeSlug(slug string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("slug <> ?", slug)
	}
}

// InCategory matches the free-text category column exactly (case-sensitive).
func InCategory(name string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("category = ?", name)
	}
}

// ExcludeID is a no-op for id 0 so it can be used on create paths too.
func ExcludeID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id == 0 {
			return db
		}
		return db.Where("id <> ?", id)
	}
}

func ProductOrdering(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order asc").Order("title asc").Order("id asc")
}

func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at desc").Order("id desc")
}

func InsertionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("id asc")
}
