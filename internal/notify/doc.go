// Package notify provides the notification hook raised by state changes,
// such as the deletion of a point of interest.
//
// The package defines the Notifier interface, a log-backed LocalMailService
// for development, and a Dispatcher that fans one notification out to
// several channels. Services depend only on Notifier.
package notify
