package model

import "gather/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
	FieldRole     = "role"
)

type User struct {
	ID       int64   `db:"id"`
	Email    string  `db:"email"`
	Password string  `db:"password"`
	Name     *string `db:"name"`
	Role     string  `db:"role"`
	model.Metadata
}
