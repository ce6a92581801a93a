package model

type UserType string

const (
	UserTypePatient  UserType = "patient"
	UserTypeProvider UserType = "provider"
	UserTypeSystem   UserType = "system"
)

type User struct {
	UUIDBase
	Type       UserType `gorm:"size:20;not null" json:"type"`
	GivenName  string   `gorm:"size:100;not null" json:"givenName"`
	FamilyName string   `gorm:"size:100;not null" json:"familyName"`
	Email      string   `gorm:"size:100;unique;not null" json:"email"`
	Password   string   `gorm:"size:100;not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}
