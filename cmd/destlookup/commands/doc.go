// Package commands implements the destlookup CLI: offline inspection of how
// the router would resolve a lookup, and generation of blinded addresses.
package commands
