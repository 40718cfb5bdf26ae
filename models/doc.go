// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SignupRequest: email, source (optional)
  - UnsubscribeRequest: email

# Response Types

Types for JSON responses:

  - SignupResponse: success, message, email, position, total_signups
  - StatsResponse: counts, top_sources, latest_signups
  - UnsubscribeResponse: success, message, email
  - PositionResponse: position lookup for one email
  - EntriesResponse: paginated records
  - ExportResponse: json rows or csv text
  - HealthResponse, RootResponse: service endpoints
  - ErrorResponse: success (always false), message

# Domain Types

  - SignupRecord: one waitlist entry per normalized email
  - ClientInfo: hashed IP and user agent captured at signup
  - SignupSummary: public view of a recent signup
  - SourceCount: signups per origin tag
  - ExportRow: one exported entry

IPHash and UserAgent on SignupRecord are never serialized.

# Constants

	DefaultSource = "website"
	FormatJSON    = "json"
	FormatCSV     = "csv"
*/
package models
