package users

import (
	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	"github.com/isaacstephens/gymman-backend/pkg/enums"
)

// Summary is the public view of a login identity.
type Summary struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Role      enums.Role `json:"role"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
}

// FromModel converts the persistence model into its public view.
func FromModel(user *models.User) Summary {
	if user == nil {
		return Summary{}
	}
	return Summary{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}
