// Package messaging builds the inbox and thread views of the portal.
//
// Every function here is a pure transformation over immutable snapshots:
// nothing is cached between calls and no input slice is modified, so the
// same inputs always yield the same, order-stable output and calls may run
// concurrently without coordination.
//
// Conversation summaries are never trusted. The last message and unread
// count of each conversation are recomputed from the message set, and a
// stored summary that disagrees is reported as an Issue instead of being
// silently used.
package messaging
