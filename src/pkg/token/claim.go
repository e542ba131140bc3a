package token

import "github.com/golang-jwt/jwt/v5"

type Claim struct {
	Metadata Metadata `json:"metadata"`
	jwt.RegisteredClaims
}

type Metadata struct {
	UserID         uint64   `json:"user_id"`
	FullName       string   `json:"full_name"`
	OrganizationID uint64   `json:"organization_id"`
	Roles          []string `json:"roles"`
	Locale         string   `json:"locale"`
}
