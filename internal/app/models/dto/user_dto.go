package dto

// UpdateUserRoleRequest assigns a role to a user (administrator only).
type UpdateUserRoleRequest struct {
	UserID int64  `json:"userId" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// UpdateUserRequest updates user fields; nil fields are left untouched.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Role      *string `json:"role,omitempty"`
}

// ProviderWebhookEvent is the identity provider's webhook envelope.
type ProviderWebhookEvent struct {
	Type string                   `json:"type"`
	Data ProviderWebhookEventData `json:"data"`
}

// ProviderWebhookEventData carries the provider-side user record.
type ProviderWebhookEventData struct {
	ID             string                 `json:"id"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	EmailAddresses []ProviderEmailAddress `json:"email_addresses"`
}

// ProviderEmailAddress is one email entry on a provider user record.
type ProviderEmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// PrimaryEmail returns the first email address on the event, or "".
func (d ProviderWebhookEventData) PrimaryEmail() string {
	if len(d.EmailAddresses) == 0 {
		return ""
	}
	return d.EmailAddresses[0].EmailAddress
}
