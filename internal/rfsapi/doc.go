/*
Package rfsapi is the HTTP client for raw filesystem API servers.

A server speaking the protocol answers a GET carrying the
X-Raw-Filesystem-API: 1 header with a JSON description of the location
(see types.Listing). Without the header, or with the value 0, the same
location yields its raw bytes. Writable servers additionally accept PUT to
create or replace a file and DELETE to remove one.

# Requests

	client := rfsapi.New(rfsapi.Config{Timeout: 10 * time.Second})
	listing, err := client.FetchListing(ctx, u)
	raw, err := client.FetchRaw(ctx, u)
	status, err := client.Upload(ctx, u, file, size)
	status, err := client.Delete(ctx, u)

Every request carries the doh User-Agent. Gzip encoded bodies are decoded
transparently. Nothing is retried.

# Errors

FetchListing and FetchRaw fail with one of three error types, distinguished
with AsTransport, AsStatus and AsProtocol:

  - TransportError: the server could not be reached or the body could not be read
  - StatusError: the server answered with a non-2xx status
  - ProtocolError: the body is not a valid listing

Upload and Delete report non-2xx answers through the returned Status instead,
since the caller prints them either way.
*/
package rfsapi
