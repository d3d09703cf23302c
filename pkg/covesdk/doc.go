// Package covesdk provides a typed Go client for the cove group and invite
// API, plus the request/response wire types the server handlers themselves
// encode. Keeping both sides on one set of types means the envelope shapes
// cannot drift.
//
// The SDK does not manage credentials: the caller obtains a bearer token from
// the identity provider and hands it to NewClient.
//
//	client := covesdk.NewClient("https://cove.example", token)
//	group, err := client.CreateGroup(ctx, "Campers")
package covesdk
