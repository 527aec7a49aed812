// Package auth provides account authentication for the API.
//
// Clients register or log in through the Service and receive a signed JWT.
// Every later request carries it as a Bearer token, which the Middleware
// validates before handlers run. Passwords are stored as bcrypt hashes.
package auth
