// Package profileservice owns user profiles and runs the edit-profile and
// delete-account sagas. Edits commit locally and propagate to the
// credential service and device registry via best-effort broadcasts;
// account deletion requires the synchronous credential delete to succeed
// before any local row is removed.
package profileservice
