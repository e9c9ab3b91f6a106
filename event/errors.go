// SPDX-FileCopyrightText: 2025 Core Automation
// SPDX-License-Identifier: Apache-2.0

package event

import "fmt"

// MalformedRecordError indicates a change record whose shape does not match
// the expected commit-notification layout. No partial identity is produced
// for such a record.
type MalformedRecordError struct {
	Reason string
}

func (e MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed change record: %s", e.Reason)
}
