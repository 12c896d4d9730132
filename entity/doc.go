// Package entity provides the identity-bearing base that domain entities embed,
// along with dictionary export and equality helpers.
package entity
