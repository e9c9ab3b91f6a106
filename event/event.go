// SPDX-FileCopyrightText: 2025 Core Automation
// SPDX-License-Identifier: Apache-2.0

package event

// Event is the commit-notification payload delivered to the listener. Field
// names are bit-exact with what the source-control trigger emits.
//
// A payload without a Records field decodes with a nil Records slice, which
// is how the handler tells a missing record list apart from an empty one.
type Event struct {
	Records []Record `json:"Records"`
}

// Record describes one repository change within an event.
type Record struct {
	// SourceIdentifier is a colon-delimited resource name whose final
	// segment is the {portfolio}-{app} repository name.
	SourceIdentifier string `json:"sourceIdentifier"`

	Changeset Changeset `json:"changeset"`
}

// Changeset carries the ref updates of one record.
type Changeset struct {
	References []Reference `json:"references"`
}

// Reference is a single ref update. Ref is a full ref path such as
// refs/heads/main; Revision is the commit hash the ref now points at.
type Reference struct {
	Ref      string `json:"ref"`
	Revision string `json:"revision"`
}
