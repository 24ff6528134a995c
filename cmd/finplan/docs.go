package main

// General API documentation for swaggo. Run `swag init -g cmd/finplan/docs.go` to regenerate docs.
//
// @title           finplan API
// @version         1.0
// @description     Savings plans, property estimates and a financial advisor chat backed by locally trained models.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
