package domain

import "time"

// Credential is a cached bearer token and its computed expiry.
type Credential struct {
	Token      string
	ExpiresAt  time.Time
	ObtainedAt time.Time
}

// Fresh reports whether the credential can be used at now without refresh,
// i.e. now+margin is still before the expiry.
func (c Credential) Fresh(now time.Time, margin time.Duration) bool {
	if c.Token == "" {
		return false
	}
	return now.Add(margin).Before(c.ExpiresAt)
}
