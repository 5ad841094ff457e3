// Package model defines the domain types used across the application.
package model

// Listing is one marketplace post as read from a feed.
type Listing struct {
	ID    string
	Title string
	Link  string
}

// Match is a listing that fired a rule, with the human-readable reason.
type Match struct {
	Title  string
	Link   string
	Reason string
}

// SourceKind selects the classifier chain applied to a feed.
type SourceKind string

// Supported source kinds.
const (
	// SourcePrimary is the deals feed, classified with price thresholds.
	SourcePrimary SourceKind = "primary"
	// SourceSecondary is the have/want swap feed, keyword-only within [H].
	SourceSecondary SourceKind = "secondary"
)

// Source is a configured feed to scan.
type Source struct {
	Name string
	URL  string
	Kind SourceKind
}
