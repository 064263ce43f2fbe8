// Package services contains the application services of the sharder
// client: the transfer pipeline that binds encryption to uploads and
// downloads, the file catalogue, and session token handling.
package services
