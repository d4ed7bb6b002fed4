package reflector

import (
	"github.com/podhmo/go-reflector/binding"
	"github.com/podhmo/go-reflector/parser"
)

// Handlers of the /mapping/users resource.

// ListUsers answers GET /mapping/users.
func ListUsers(c *Context) (string, error) { return "get users", nil }

// AddUser answers POST /mapping/users.
func AddUser(c *Context) (string, error) { return "post users", nil }

// FindUser echoes the user id of GET /mapping/users/{userId}.
func FindUser(c *Context) (string, error) {
	userID, err := userIDOf(c)
	if err != nil {
		return "", err
	}
	return "get userID: " + userID, nil
}

// UpdateUser echoes the user id of PATCH /mapping/users/{userId}.
func UpdateUser(c *Context) (string, error) {
	userID, err := userIDOf(c)
	if err != nil {
		return "", err
	}
	return "update userId: " + userID, nil
}

// DeleteUser echoes the user id of DELETE /mapping/users/{userId}.
func DeleteUser(c *Context) (string, error) {
	userID, err := userIDOf(c)
	if err != nil {
		return "", err
	}
	return "delete userId: " + userID, nil
}

func userIDOf(c *Context) (string, error) {
	var userID string
	if err := binding.One(c.Binding, &userID, binding.Path, "userId", parser.String, binding.Required); err != nil {
		return "", err
	}
	return userID, nil
}
