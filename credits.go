package synthex

import "context"

// CreditsService groups the credit endpoints. Get one from [Client.Credits].
type CreditsService struct {
	client *Client
}

// Promotional returns the promotional credits granted to the user.
func (s *CreditsService) Promotional(ctx context.Context) (*Credit, error) {
	return getData[Credit](ctx, s.client, promotionalCreditsEndpoint, nil)
}
