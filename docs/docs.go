// Package docs registers the OpenAPI description served at /swagger/*.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "Tenant login",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/admin/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "Super admin login",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current principal", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/admin/tenants": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["tenants"], "summary": "List tenants", "responses": {"200": {"description": "OK"}}},
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["tenants"], "summary": "Onboard a tenant",
                "parameters": [
                    {"type": "string", "in": "header", "name": "Idempotency-Key"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.onboardTenantRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "200": {"description": "Replayed"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/admin/tenants/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["tenants"], "summary": "Get a tenant", "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["tenants"], "summary": "Update tenant metadata", "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/tenants/{id}/deactivate": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["tenants"], "summary": "Deactivate a tenant", "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/tenants/{id}/activate": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["tenants"], "summary": "Activate a tenant", "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/admin/stats": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["tenants"], "summary": "Platform statistics", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/projects": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["projects"], "summary": "List projects", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["projects"], "summary": "Create a project", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/v1/projects/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["projects"], "summary": "Get a project", "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["projects"], "summary": "Update a project", "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["projects"], "summary": "Delete a project", "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict"}}}
        },
        "/v1/projects/{id}/units": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["units"], "summary": "List units of a project", "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["units"], "summary": "Create a unit", "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/v1/units/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["units"], "summary": "Get a unit", "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["units"], "summary": "Update a unit", "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["units"], "summary": "Delete a unit", "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/units/{id}/status": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["units"], "summary": "Change unit status", "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/v1/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "List users", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Create a user", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/v1/users/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Get a user", "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Update a user", "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/audit-logs": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["audit"], "summary": "List audit entries", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "handler.loginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.onboardTenantRequest": {
            "type": "object",
            "properties": {
                "tenant": {"type": "object", "properties": {"name": {"type": "string"}, "contact_email": {"type": "string"}, "contact_phone": {"type": "string"}, "subscription_tier": {"type": "string", "enum": ["basic", "professional", "enterprise"]}}},
                "admin": {"type": "object", "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "phone": {"type": "string"}}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Property Management API",
	Description:      "Multi-tenant property management API with per-tenant namespaces.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
