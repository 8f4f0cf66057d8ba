package models

// Admin is a back-office user. Admins are created out of band by the admin CLI.
type Admin struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"type:varchar(128)" json:"-"`
	Role         string `gorm:"type:varchar(32)" json:"role"`
}
