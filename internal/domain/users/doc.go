// Package users holds the User entity, roles and the user repository contract.
package users
