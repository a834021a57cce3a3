// Package vault discovers and reads the markdown documents of a vault
// directory.
package vault
