// Package preflight provides readiness checks for the filesystem paths and
// external services a generation run depends on.
//
// The CLI "vaultindex check" command runs RunAll and renders the results.
// The title lookup check is skipped when lookups are disabled.
package preflight
