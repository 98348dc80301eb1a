// Package application defines the job application record, its create
// payload, the calendar date type used for date_applied, and the error
// taxonomy shared by the store, service, API and CLI layers.
//
// # Record Shape
//
// An Application is a Draft plus a store-assigned ID. Only Status is ever
// mutated in place; every other field is fixed at creation time.
//
// # Identity
//
// IDs are dense: after any delete the store renumbers the surviving records
// to 1..N in their previous relative order. A caller that captured an ID
// before a delete may find that it now addresses a different record.
//
// # Errors
//
// All failures that cross a package boundary are reported as *Error with one
// of three codes: CodeValidation, CodeNotFound or CodeStoreUnavailable.
// Use IsValidation, IsNotFound and IsStoreUnavailable to classify them.
package application
