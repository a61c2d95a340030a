package users

import "github.com/shoptrack/shoptrack-backend/pkg/db/models"

// CreateUserDTO carries the fields needed to register a user reference.
type CreateUserDTO struct {
	Username  string
	FirstName string
	LastName  string
}

// ToModel converts the DTO into a persistable user model.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Username:  d.Username,
		FirstName: d.FirstName,
		LastName:  d.LastName,
	}
}
