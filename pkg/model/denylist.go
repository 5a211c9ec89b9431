package model

import "time"

// BlacklistedAccess marks a single access token as revoked before its
// natural expiry. ExpiresAt mirrors the token's own exp claim so the row can
// be pruned once signature checking would reject the token anyway.
//
// Denylist rows do not carry the Lifecycle columns: they are append-only,
// row presence means revoked, and the only removal is the hard delete in
// the pruner.
type BlacklistedAccess struct {
	ID            uint      `gorm:"column:id;primaryKey" json:"id"`
	JTI           string    `gorm:"column:jti;uniqueIndex" json:"jti"`
	ExpiresAt     time.Time `gorm:"column:expires_at;index" json:"expires_at"`
	BlacklistedAt time.Time `gorm:"column:blacklisted_at;autoCreateTime" json:"blacklisted_at"`
}

func (BlacklistedAccess) TableName() string {
	return "blacklisted_access_tokens"
}

// IsExpired reports whether the revoked token would have expired naturally.
func (b BlacklistedAccess) IsExpired(now time.Time) bool {
	return !now.Before(b.ExpiresAt)
}

// BlacklistedRefresh marks a refresh token as revoked. Every access token
// minted from it carries rjti equal to this JTI, so one row here invalidates
// the whole family without enumerating the access tokens.
type BlacklistedRefresh struct {
	ID            uint      `gorm:"column:id;primaryKey" json:"id"`
	RJTI          string    `gorm:"column:rjti;uniqueIndex" json:"rjti"`
	ExpiresAt     time.Time `gorm:"column:expires_at;index" json:"expires_at"`
	BlacklistedAt time.Time `gorm:"column:blacklisted_at;autoCreateTime" json:"blacklisted_at"`
}

func (BlacklistedRefresh) TableName() string {
	return "blacklisted_refresh_tokens"
}

// IsExpired reports whether the revoked token would have expired naturally.
func (b BlacklistedRefresh) IsExpired(now time.Time) bool {
	return !now.Before(b.ExpiresAt)
}
