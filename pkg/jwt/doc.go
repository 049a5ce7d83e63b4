// Package jwt issues and verifies HS256 tokens with github.com/golang-jwt/jwt/v5 and
// turns verified claims into an identity.Identity for downstream handlers.
//
// Tokens carry the registered claims (jti, sub, iss, iat, nbf, exp) plus the
// user's roles and an optional principal. Parse only accepts HS256, requires an
// expiry and checks the issuer when one is configured.
//
// # Configuration
//
//	JWT_SECRET  signing key; empty disables token support
//	JWT_ISSUER  default "fortunecookie"
//	JWT_TTL     token lifetime (default 24h)
//
// # Usage
//
//	svc, err := jwt.NewFromConfig(cfg.JWT)
//	if err != nil {
//		return err
//	}
//	token, err := svc.Generate("alice", []string{"player"}, "")
//
//	r.Use(jwt.Middleware(svc,
//		jwt.Optional(),
//		jwt.WithExtractors(jwt.BearerExtractor, jwt.CookieExtractor("token")),
//	))
//
// Middleware stores the claims (ClaimsFromContext) and the derived identity
// (identity.FromContext) in the request context. With Optional, requests
// without a token pass through as anonymous; a token that fails verification
// is always answered with 401.
package jwt
