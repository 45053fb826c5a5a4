// Package api handles incoming HTTP requests for cities and their points of
// interest. It validates requests, calls the application services and
// translates their outcomes into JSON responses and status codes. Error
// translation is centralized in HandleAPIError.
package api
