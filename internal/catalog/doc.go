// Package catalog turns parsed document headers into normalized catalog
// items.
//
// RawItem mirrors the header with explicit presence for every optional
// field. Normalizer applies the language mapping, lifecycle state rules and
// output defaults, yielding an Item or a skip reason.
package catalog
