package model

import (
	"golang.org/x/crypto/bcrypt"
)

// User is a principal that can be issued credentials. The UUID is the stable
// subject identifier embedded in tokens; it survives username and email
// renames.
type User struct {
	ID           uint   `gorm:"column:id;primaryKey" json:"id"`
	UUID         string `gorm:"column:uuid;type:uuid;uniqueIndex" json:"uuid"`
	Username     string `gorm:"column:username;uniqueIndex" json:"username"`
	Email        string `gorm:"column:email;uniqueIndex" json:"email"`
	FirstName    string `gorm:"column:first_name" json:"first_name"`
	LastName     string `gorm:"column:last_name" json:"last_name"`
	ContactNo    string `gorm:"column:contact_no;index" json:"contact_no,omitempty"`
	PasswordHash string `gorm:"column:password" json:"-"`
	TokenVersion int    `gorm:"column:token_version;not null;default:1" json:"-"`
	Lifecycle

	Groups []Group `gorm:"many2many:auth_user_groups;joinForeignKey:user_id;joinReferences:group_id" json:"-"`
}

func (User) TableName() string {
	return "auth_user_extend"
}

// SetPassword hashes the plaintext password with bcrypt and stores the hash.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares a plaintext password against the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// Group is a named collection of users used for group-level grants.
type Group struct {
	ID   uint   `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name;uniqueIndex" json:"name"`
	Lifecycle
}

func (Group) TableName() string {
	return "auth_group"
}
