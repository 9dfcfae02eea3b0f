package models

type Slide struct {
	ID    uint   `gorm:"primarykey"`
	Title string `gorm:"size:255;not null"`
	Text  string `gorm:"type:text;not null"`
	// Bg holds the storage key of the background image, empty when unset.
	Bg string `gorm:"size:100"`
}
