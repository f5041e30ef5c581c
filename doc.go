// Package main provides the entry point for the GiveHub-Admin backend.
// It initializes and runs a web server using the Fiber framework that exposes
// a JSON API for managing users, campaigns, donations, notices, platform
// settings and shareable public links. The application uses gorm for data
// persistence and role-based permissions for access control.
package main
