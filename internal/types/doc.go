/*
Package types defines the data structures shared across doh.

# Protocol Types

Listing:
  - Structured description of a remote location
  - Returned when the X-Raw-Filesystem-API header is "1"
  - Flags for root, file and write support

RawFile:
  - One entry of a Listing, exactly as the server sends it
  - last_modified is an RFC3339 timestamp

# History Types

Transfer:
  - One download, upload or delete, as journaled by the history package
  - Carries the HTTP status, byte count and duration
*/
package types
