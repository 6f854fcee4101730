package main

// General API documentation for swaggo. Run `swag init` to generate docs.
//
// @title           boolevald status API
// @version         1.0
// @description     Read-only status endpoints for a running evaluation.
//
// @BasePath  /
//
// @schemes http
