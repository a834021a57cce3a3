// Package oembed looks up YouTube playlist titles through the public oEmbed
// endpoint. No API key is required.
package oembed
