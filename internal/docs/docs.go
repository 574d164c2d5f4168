// Package docs registers the Swagger specification with swag so the
// gin-swagger handler can serve it.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type \"Bearer\" followed by a space and JWT token."
        }
    },
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new user"}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login user"}},
        "/auth/password-reset": {"post": {"tags": ["auth"], "summary": "Request password reset"}},
        "/auth/password-reset/confirm": {"post": {"tags": ["auth"], "summary": "Confirm password reset"}},
        "/profile": {
            "get": {"tags": ["user"], "summary": "Get user profile", "security": [{"BearerAuth": []}]},
            "put": {"tags": ["user"], "summary": "Update user profile", "security": [{"BearerAuth": []}]}
        },
        "/profile/password": {"put": {"tags": ["user"], "summary": "Change password", "security": [{"BearerAuth": []}]}},
        "/profile/access-logs": {"get": {"tags": ["user"], "summary": "Get access logs", "security": [{"BearerAuth": []}]}},
        "/categories": {
            "get": {"tags": ["categories"], "summary": "List categories"},
            "post": {"tags": ["categories"], "summary": "Create a category (admin)", "security": [{"BearerAuth": []}]}
        },
        "/expenses": {
            "get": {"tags": ["expenses"], "summary": "Get expenses", "security": [{"BearerAuth": []}]},
            "post": {"tags": ["expenses"], "summary": "Create an expense", "security": [{"BearerAuth": []}]}
        },
        "/expenses/{id}": {
            "get": {"tags": ["expenses"], "summary": "Get expense by ID", "security": [{"BearerAuth": []}]},
            "put": {"tags": ["expenses"], "summary": "Update expense", "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["expenses"], "summary": "Delete expense", "security": [{"BearerAuth": []}]}
        },
        "/budgets": {
            "get": {"tags": ["budgets"], "summary": "Get budgets", "security": [{"BearerAuth": []}]},
            "post": {"tags": ["budgets"], "summary": "Create a budget", "security": [{"BearerAuth": []}]}
        },
        "/budgets/alert": {"get": {"tags": ["budgets"], "summary": "Get budget alert", "security": [{"BearerAuth": []}]}},
        "/budgets/{id}": {
            "get": {"tags": ["budgets"], "summary": "Get budget by ID", "security": [{"BearerAuth": []}]},
            "put": {"tags": ["budgets"], "summary": "Update budget", "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["budgets"], "summary": "Delete budget", "security": [{"BearerAuth": []}]}
        },
        "/reports/spending": {"get": {"tags": ["reports"], "summary": "Monthly spending report", "security": [{"BearerAuth": []}]}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Spendwise API",
	Description:      "Spendwise is a personal finance application for recording expenses, setting per-category monthly budgets, and viewing spend reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
