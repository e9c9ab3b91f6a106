// SPDX-FileCopyrightText: 2025 Core Automation
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"fmt"
	"strings"
)

// shortRevisionLength is the number of leading revision characters used as
// the human-readable build tag.
const shortRevisionLength = 7

// DeploymentIdentity is the set of deployment coordinates derived from one
// change record. It is read-only once built and lives only for the duration
// of processing that record.
type DeploymentIdentity struct {
	// Portfolio is the first dash-delimited segment of the repository name.
	Portfolio string

	// App is the remainder of the repository name with interior dashes kept,
	// so core-api-gateway resolves to portfolio "core" and app "api-gateway".
	App string

	// Branch is the ref name with any refs/heads/ prefix stripped.
	Branch string

	// Build is the first seven characters of the commit revision. This is
	// the build tag, not the build number allocated by the counter store.
	Build string

	// Client is the tenant identifier builds run under. It is supplied by a
	// tenant resolver, not derived from the event.
	Client string
}

// ProjectName returns the build project the identity maps to.
func (d DeploymentIdentity) ProjectName() string {
	return d.Portfolio + "-" + d.App
}

// ExtractIdentity derives a DeploymentIdentity from one change record.
//
// Multi-branch pushes carry more than one reference; only the first one
// triggers a build. Repository names without a dash have no app segment and
// are rejected rather than guessing a fallback.
func ExtractIdentity(r Record) (DeploymentIdentity, error) {
	segments := strings.Split(r.SourceIdentifier, ":")
	repository := segments[len(segments)-1]
	if repository == "" {
		return DeploymentIdentity{}, MalformedRecordError{Reason: "sourceIdentifier has no repository segment"}
	}

	parts := strings.Split(repository, "-")
	if len(parts) < 2 {
		return DeploymentIdentity{}, MalformedRecordError{
			Reason: fmt.Sprintf("repository name %q does not follow the {portfolio}-{app} convention", repository),
		}
	}
	portfolio := parts[0]
	app := strings.Join(parts[1:], "-")
	if portfolio == "" || app == "" {
		return DeploymentIdentity{}, MalformedRecordError{
			Reason: fmt.Sprintf("repository name %q has an empty portfolio or app segment", repository),
		}
	}

	if len(r.Changeset.References) < 1 {
		return DeploymentIdentity{}, MalformedRecordError{Reason: "changeset carries no references"}
	}

	reference := r.Changeset.References[0]
	refParts := strings.Split(reference.Ref, "/")
	branch := refParts[len(refParts)-1]
	if branch == "" {
		return DeploymentIdentity{}, MalformedRecordError{Reason: "reference has an empty ref name"}
	}

	if len(reference.Revision) < shortRevisionLength {
		return DeploymentIdentity{}, MalformedRecordError{
			Reason: fmt.Sprintf("revision %q is shorter than %d characters", reference.Revision, shortRevisionLength),
		}
	}

	return DeploymentIdentity{
		Portfolio: portfolio,
		App:       app,
		Branch:    branch,
		Build:     reference.Revision[:shortRevisionLength],
	}, nil
}
