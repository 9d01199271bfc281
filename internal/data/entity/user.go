package entity

type User struct {
	Base
	Email          string  `db:"email"`
	PasswordHash   string  `db:"password"`
	FullName       *string `db:"full_name"`
	EmailConfirmed bool    `db:"email_confirmed"`
}
