package domain

import "time"

// AdminUser is an allow-list entry granting dashboard access. Admin login
// requires both valid credentials and a matching entry here; the allow-list
// is the authorization tier, separate from authentication.
type AdminUser struct {
	ID        string
	Email     string
	CreatedAt time.Time
}
