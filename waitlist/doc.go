// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package waitlist implements the signup registry and its position rules.

# Registry

A Registry is built once around a Store and shared by all handlers:

	reg := waitlist.NewRegistry(waitlist.NewMemoryStore(),
		waitlist.WithDefaultSource("website"),
		waitlist.WithProductName("SiikHub"),
	)

# Registration

Register normalizes the email (trim, lower-case) and then takes one of
three branches:

  - duplicate: the email is already active, nothing changes
  - reactivated: the email was unsubscribed, its record comes back with a
    fresh timestamp and the new source
  - created: a new record with the next id

The last two recompute positions: active records sorted by timestamp
(ties by id) are numbered 1..N.

# Unsubscribe

Unsubscribe marks the record inactive. It keeps its last position and the
other records are not renumbered until the next registration.

# Errors

  - ErrInvalidInput: malformed email, source, or paging (as *InputError)
  - ErrNotFound: no active record for the email

Any other error came from the Store.
*/
package waitlist
