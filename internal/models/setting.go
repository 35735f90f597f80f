package model

// Setting is one key/value pair of the process-wide settings store.
type Setting struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value string `gorm:"not null"`
}
