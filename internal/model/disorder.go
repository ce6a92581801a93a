package model

// Disorder is a clinical domain tag. Assessments are associated with one
// disorder overall, and individual questions carry the disorder they measure,
// which submission rules use as their filter key.
type Disorder struct {
	UUIDBase
	Name        string `gorm:"size:100;unique;not null" json:"name"`
	DisplayName string `gorm:"size:255" json:"displayName"`
}

func (Disorder) TableName() string {
	return "disorders"
}
