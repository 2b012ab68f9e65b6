package apisvc

import "context"

type AuthAPI struct {
	c *Client
}

// Login exchanges credentials for the token/identity/role trio.
func (a AuthAPI) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var resp LoginResponse
	err := a.c.post(ctx, "/auth/login", Credentials{Username: username, Password: password}, &resp)
	return resp, err
}

func (a AuthAPI) Register(ctx context.Context, acct NewAccount) (RegisterResponse, error) {
	var resp RegisterResponse
	err := a.c.post(ctx, "/auth/register", acct, &resp)
	return resp, err
}
