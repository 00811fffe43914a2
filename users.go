package synthex

import "context"

// UsersService groups the user endpoints. Get one from [Client.Users].
type UsersService struct {
	client *Client
}

// Me returns the profile of the user owning the API key.
func (s *UsersService) Me(ctx context.Context) (*User, error) {
	return getData[User](ctx, s.client, currentUserEndpoint, nil)
}
