// Package language normalizes the free-form language values found in
// document headers to the small set of codes the index tracks.
package language
