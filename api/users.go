package api

import (
	"fmt"

	"github.com/thangnd96/hybrid-app/structs"

	"github.com/pkg/errors"
)

// FetchUser retrieves a user record by numeric ID, used to resolve the
// author summary on the post detail view.
func (c *Client) FetchUser(id int) (structs.User, error) {
	var user structs.User
	if err := c.get(fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return structs.User{}, errors.Wrapf(err, "fetching user %d", id)
	}
	return user, nil
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates against the remote user API. This is the fallback
// path taken when the local roster has no match.
func (c *Client) Login(username, password string) (structs.User, error) {
	var user structs.User
	err := c.post("/user/login", loginBody{Username: username, Password: password}, &user)
	if err != nil {
		return structs.User{}, errors.Wrap(err, "remote login")
	}
	return user, nil
}
