// Package jwt contains types and functions to create, sign, verify and parse JSON Web Tokens (JWT).
// This package contains a compliant implementation of RFC7519 (https://datatracker.ietf.org/doc/html/rfc7519).
package jwt
