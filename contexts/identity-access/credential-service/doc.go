// Package credentialservice owns account credentials and runs the
// create-account saga: create the credential locally, call the profile
// service synchronously, compensate on failure, and broadcast the new
// owner to the device registry on success.
//
// The module keeps domain/application logic decoupled from runtime/platform
// concerns through ports and adapter composition.
package credentialservice
