package models

// Category groups products by name. Products reference it through their free-text
// Category column, so renaming a category detaches its products.
type Category struct {
	ID          uint   `gorm:"primarykey"`
	Name        string `gorm:"size:100;uniqueIndex;not null"`
	Slug        string `gorm:"size:100;uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

func (Category) TableName() string {
	return "categories"
}
