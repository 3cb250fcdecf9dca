package model

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel

	Name     string   `gorm:"size:100" json:"name"`
	Email    string   `gorm:"size:255;uniqueIndex" json:"email"`
	Password string   `gorm:"size:255" json:"-"`
	Role     UserRole `gorm:"size:20;default:student" json:"role"`
	XP       int      `gorm:"default:0" json:"xp"`
	Bio      string   `gorm:"type:text" json:"bio"`
	Avatar   string   `gorm:"size:500" json:"avatar"`
}

func (User) TableName() string {
	return "users"
}
