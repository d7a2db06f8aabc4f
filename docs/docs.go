// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@schoolms.local"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/academic-years": {
            "post": {
                "summary": "Create an academic year",
                "tags": [
                    "academic"
                ],
                "description": "The name must be two consecutive years (2024-2025). Marking it current clears the other current year.",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Academic year",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Academic year created",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Academic year already exists",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "summary": "List academic years",
                "tags": [
                    "academic"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Academic years",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    }
                }
            }
        },
        "/academic-years/current": {
            "get": {
                "summary": "Current academic year",
                "tags": [
                    "academic"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Current academic year",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "No current academic year",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/academic-years/{id}": {
            "get": {
                "summary": "Get an academic year",
                "tags": [
                    "academic"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Academic year ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Academic year",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Academic year not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update an academic year",
                "tags": [
                    "academic"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Academic year ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Academic year",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Academic year updated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Academic year not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/academic-years/{id}/current": {
            "post": {
                "summary": "Set the current academic year",
                "tags": [
                    "academic"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Academic year ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Current academic year set",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Academic year not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/academic-years/{id}/terms": {
            "post": {
                "summary": "Create a term",
                "tags": [
                    "academic"
                ],
                "description": "The term number must be within the school's terms per year and the dates inside the year",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Academic year ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Term",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Term created",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Term already exists",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "summary": "List terms of a year",
                "tags": [
                    "academic"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Academic year ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Terms",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Academic year not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/change-password": {
            "post": {
                "summary": "Change password",
                "tags": [
                    "auth"
                ],
                "description": "Changes the password and revokes every refresh token of the user",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Current and new password",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Password changed",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "summary": "User login",
                "tags": [
                    "auth"
                ],
                "description": "Authenticates a user by username or email and returns tokens, the classified role, the dashboard to redirect to and the role profile",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Login credentials",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Login successful",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request format",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Invalid credentials or account disabled",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/logout": {
            "post": {
                "summary": "Logout",
                "tags": [
                    "auth"
                ],
                "description": "Revokes the given refresh token",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Refresh token to revoke",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Logged out",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/me": {
            "get": {
                "summary": "Current user",
                "tags": [
                    "auth"
                ],
                "description": "Returns the signed-in user with role, redirect path and profile",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Current user",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "summary": "Refresh access token",
                "tags": [
                    "auth"
                ],
                "description": "Rotates the refresh token: the presented token is revoked and a new pair issued",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Refresh token",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Token refreshed",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid request format",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Invalid, expired or revoked refresh token",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/classes": {
            "post": {
                "summary": "Create a class",
                "tags": [
                    "classes"
                ],
                "description": "Levels are limited per stage (KG 2, PR 6, JHS 3, SHS 3). SHS classes need a programme, other stages must not have one.",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Class",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Class created",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Class already exists",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "summary": "List classes",
                "tags": [
                    "classes"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Page number",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Page size",
                        "type": "integer"
                    },
                    {
                        "name": "stage",
                        "in": "query",
                        "required": false,
                        "description": "KG, PR, JHS or SHS",
                        "type": "string"
                    },
                    {
                        "name": "level",
                        "in": "query",
                        "required": false,
                        "description": "Level within the stage",
                        "type": "integer"
                    },
                    {
                        "name": "programmeId",
                        "in": "query",
                        "required": false,
                        "description": "Programme",
                        "type": "integer"
                    },
                    {
                        "name": "isActive",
                        "in": "query",
                        "required": false,
                        "description": "Filter by active flag",
                        "type": "boolean"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Classes",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    }
                }
            }
        },
        "/classes/{id}": {
            "get": {
                "summary": "Get a class",
                "tags": [
                    "classes"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Class ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Class",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Class not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a class",
                "tags": [
                    "classes"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Class ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Class",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Class updated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Class not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/classes/{id}/status": {
            "patch": {
                "summary": "Activate or deactivate a class",
                "tags": [
                    "classes"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Class ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "New state",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Class updated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    }
                }
            }
        },
        "/dashboard": {
            "get": {
                "summary": "Dashboard",
                "tags": [
                    "dashboard"
                ],
                "description": "Superusers get school counts, administrators the school summary, teachers their profile and the summary, students their class and guardians, guardians their wards",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Dashboard",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/events/ws": {
            "get": {
                "summary": "Stream school events",
                "tags": [
                    "events"
                ],
                "description": "Upgrades to a WebSocket that streams registration, voucher and import events of the caller's school. Browsers may pass the JWT as the ` + "`" + `token` + "`" + ` query parameter.",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "token",
                        "in": "query",
                        "required": false,
                        "description": "JWT access token",
                        "type": "string"
                    }
                ],
                "responses": {
                    "101": {
                        "description": "Switching Protocols"
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/guardians": {
            "post": {
                "summary": "Create a guardian",
                "tags": [
                    "guardians"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Guardian",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Guardian created",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "summary": "List guardians",
                "tags": [
                    "guardians"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Page number",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Page size",
                        "type": "integer"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "required": false,
                        "description": "Search in name, email and phone",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Guardians",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    }
                }
            }
        },
        "/guardians/{id}": {
            "get": {
                "summary": "Get a guardian",
                "tags": [
                    "guardians"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Guardian ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Guardian",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Guardian not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a guardian",
                "tags": [
                    "guardians"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Guardian ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Guardian",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Guardian updated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Guardian not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/guardians/{id}/account": {
            "post": {
                "summary": "Open a guardian account",
                "tags": [
                    "guardians"
                ],
                "description": "The username is the guardian's email, or the phone number when there is no email",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Guardian ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Account created",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Guardian not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Guardian already has an account",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/guardians/{id}/wards": {
            "get": {
                "summary": "List the wards of a guardian",
                "tags": [
                    "guardians"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Guardian ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Wards",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Guardian not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "summary": "Health check",
                "tags": [
                    "system"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Service healthy",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "503": {
                        "description": "Database unreachable",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/programmes": {
            "post": {
                "summary": "Create a programme",
                "tags": [
                    "programmes"
                ],
                "description": "A blank code is derived from the name and made unique within the school",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Programme",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Programme created",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Programme already exists",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "summary": "List programmes",
                "tags": [
                    "programmes"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Page number",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Page size",
                        "type": "integer"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "required": false,
                        "description": "Search in name and code",
                        "type": "string"
                    },
                    {
                        "name": "isActive",
                        "in": "query",
                        "required": false,
                        "description": "Filter by active flag",
                        "type": "boolean"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Programmes",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    }
                }
            }
        },
        "/programmes/{id}": {
            "get": {
                "summary": "Get a programme",
                "tags": [
                    "programmes"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Programme ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Programme",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Programme not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a programme",
                "tags": [
                    "programmes"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Programme ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Programme",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Programme updated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Programme not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Programme already exists",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/programmes/{id}/status": {
            "patch": {
                "summary": "Activate or deactivate a programme",
                "tags": [
                    "programmes"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Programme ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "New state",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Programme updated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Programme not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/register/student": {
            "post": {
                "summary": "Register a student with a voucher",
                "tags": [
                    "registration"
                ],
                "description": "Validates the voucher, creates the student (and a login account when the voucher allows sign-in), links guardians and consumes the voucher in one transaction",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Voucher and student details",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Student registered",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed, voucher used, email missing, class full or several primary guardians",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Invalid serial number or PIN",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Email or Ghana card already registered",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/register/teacher": {
            "post": {
                "summary": "Register a teacher with a voucher",
                "tags": [
                    "registration"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Voucher and teacher details",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Teacher registered",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed, voucher used or email missing",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Invalid serial number or PIN",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Email or Ghana card already registered",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/school": {
            "get": {
                "summary": "Get my school",
                "tags": [
                    "school"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "School",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update my school",
                "tags": [
                    "school"
                ],
                "description": "Updates contact, location, branding colours and academic settings. The code never changes.",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Fields to change",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "School updated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/school/logo": {
            "post": {
                "summary": "Upload school logo",
                "tags": [
                    "school"
                ],
                "description": "Accepts png, jpeg, gif or webp up to the configured size",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "logo",
                        "in": "formData",
                        "required": true,
                        "description": "Logo image",
                        "type": "file"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Logo uploaded",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Missing or invalid file",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/schools": {
            "post": {
                "summary": "Create a school",
                "tags": [
                    "schools"
                ],
                "description": "Creates a school and its first administrator account. A blank code is generated from the name.",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "School and administrator",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "School created",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Superuser only",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Code, slug or username already exists",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "summary": "List schools",
                "tags": [
                    "schools"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Page number",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Page size",
                        "type": "integer"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "required": false,
                        "description": "Search in name, code, town and district",
                        "type": "string"
                    },
                    {
                        "name": "isActive",
                        "in": "query",
                        "required": false,
                        "description": "Filter by active flag",
                        "type": "boolean"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Schools",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "403": {
                        "description": "Superuser only",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/schools/{id}": {
            "get": {
                "summary": "Get a school",
                "tags": [
                    "schools"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "School ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "School",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "School not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a school",
                "tags": [
                    "schools"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "School ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Fields to change",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "School updated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "School not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/schools/{id}/status": {
            "patch": {
                "summary": "Activate or deactivate a school",
                "tags": [
                    "schools"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "School ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "New state",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "School updated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "School not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/students": {
            "post": {
                "summary": "Create a student",
                "tags": [
                    "students"
                ],
                "description": "Generates the student ID, optionally opens a login account and links guardians (found by email, then phone, or created)",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Student",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Student created",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed, class full or several primary guardians",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Email or Ghana card already registered",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "summary": "List students",
                "tags": [
                    "students"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Page number",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Page size",
                        "type": "integer"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "required": false,
                        "description": "Search in student ID, names, email and phone",
                        "type": "string"
                    },
                    {
                        "name": "orderBy",
                        "in": "query",
                        "required": false,
                        "description": "studentId, firstName, lastName, yearAdmitted or createdAt",
                        "type": "string"
                    },
                    {
                        "name": "desc",
                        "in": "query",
                        "required": false,
                        "description": "Descending order",
                        "type": "boolean"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "Enrolment status",
                        "type": "string"
                    },
                    {
                        "name": "gender",
                        "in": "query",
                        "required": false,
                        "description": "M or F",
                        "type": "string"
                    },
                    {
                        "name": "classId",
                        "in": "query",
                        "required": false,
                        "description": "Current class",
                        "type": "integer"
                    },
                    {
                        "name": "programmeId",
                        "in": "query",
                        "required": false,
                        "description": "Programme of the current class",
                        "type": "integer"
                    },
                    {
                        "name": "yearAdmitted",
                        "in": "query",
                        "required": false,
                        "description": "Year admitted",
                        "type": "integer"
                    },
                    {
                        "name": "isActive",
                        "in": "query",
                        "required": false,
                        "description": "Filter by active flag",
                        "type": "boolean"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Students",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    }
                }
            }
        },
        "/students/bulk-move": {
            "post": {
                "summary": "Move students to a class",
                "tags": [
                    "students"
                ],
                "description": "Promotes, demotes or reshuffles students. Each student is moved on its own; failures are reported per student.",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Students and target class",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Move finished",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Target class not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/students/export": {
            "get": {
                "summary": "Export students",
                "tags": [
                    "students"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "text/csv"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "Enrolment status",
                        "type": "string"
                    },
                    {
                        "name": "classId",
                        "in": "query",
                        "required": false,
                        "description": "Current class",
                        "type": "integer"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "required": false,
                        "description": "Search in student ID, names, email and phone",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "students CSV",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    }
                }
            }
        },
        "/students/import": {
            "post": {
                "summary": "Import students",
                "tags": [
                    "students"
                ],
                "description": "Uses the export header. Every row is created on its own; failing rows are reported with their row number.",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "file",
                        "in": "formData",
                        "required": true,
                        "description": "CSV file",
                        "type": "file"
                    },
                    {
                        "name": "defaultClassId",
                        "in": "formData",
                        "required": false,
                        "description": "Class for rows without a known class_name",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Import finished",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Missing file, bad header or too many rows",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/students/{id}": {
            "get": {
                "summary": "Get a student",
                "tags": [
                    "students"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Student record ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Student",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Student not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a student",
                "tags": [
                    "students"
                ],
                "description": "The student ID and the school never change",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Student record ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Fields to change",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Student updated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed or class full",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Student not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "summary": "Deactivate a student",
                "tags": [
                    "students"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Student record ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Student deactivated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Student not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/students/{id}/guardians": {
            "get": {
                "summary": "List the guardians of a student",
                "tags": [
                    "guardians"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Student record ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Guardians, primary first",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Student not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "summary": "Link a guardian to a student",
                "tags": [
                    "guardians"
                ],
                "description": "Marking the link primary clears the other primary guardian of the student",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Student record ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Link",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Guardian linked",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Student or guardian not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Already linked",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/students/{id}/guardians/{guardianId}": {
            "put": {
                "summary": "Update a guardian link",
                "tags": [
                    "guardians"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Student record ID",
                        "type": "integer"
                    },
                    {
                        "name": "guardianId",
                        "in": "path",
                        "required": true,
                        "description": "Guardian ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Fields to change",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Link updated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Link not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "summary": "Unlink a guardian",
                "tags": [
                    "guardians"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Student record ID",
                        "type": "integer"
                    },
                    {
                        "name": "guardianId",
                        "in": "path",
                        "required": true,
                        "description": "Guardian ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Guardian unlinked",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Link not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/students/{id}/status": {
            "patch": {
                "summary": "Change student status",
                "tags": [
                    "students"
                ],
                "description": "Any status other than active also deactivates the student's login account",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Student record ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "New status",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Status changed",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Student not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/subjects": {
            "post": {
                "summary": "Create a subject",
                "tags": [
                    "subjects"
                ],
                "description": "A blank code is taken from the first letters of the name and made unique within the school. The type defaults to core.",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Subject",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Subject created",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Subject already exists",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "summary": "List subjects",
                "tags": [
                    "subjects"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Page number",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Page size",
                        "type": "integer"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "required": false,
                        "description": "Search in name and code",
                        "type": "string"
                    },
                    {
                        "name": "subjectType",
                        "in": "query",
                        "required": false,
                        "description": "Filter by type",
                        "type": "string",
                        "enum": [
                            "core",
                            "elective",
                            "extracurricular"
                        ]
                    },
                    {
                        "name": "isActive",
                        "in": "query",
                        "required": false,
                        "description": "Filter by active flag",
                        "type": "boolean"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Subjects",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    }
                }
            }
        },
        "/subjects/summary": {
            "get": {
                "summary": "Count subjects by type",
                "tags": [
                    "subjects"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Subject counts",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    }
                }
            }
        },
        "/subjects/{id}": {
            "get": {
                "summary": "Get a subject",
                "tags": [
                    "subjects"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Subject ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Subject",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Subject not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a subject",
                "tags": [
                    "subjects"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Subject ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Subject",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Subject updated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Subject not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Subject already exists",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "summary": "Delete a subject",
                "tags": [
                    "subjects"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Subject ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Subject deleted",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Subject not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Subject is assigned to teachers",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/subjects/{id}/status": {
            "patch": {
                "summary": "Activate or deactivate a subject",
                "tags": [
                    "subjects"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Subject ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "New state",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Subject updated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Subject not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/teachers": {
            "post": {
                "summary": "Create a teacher",
                "tags": [
                    "teachers"
                ],
                "description": "Generates the TCH identifier and optionally opens a login account",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Teacher",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Teacher created",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Email or Ghana card already registered",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "summary": "List teachers",
                "tags": [
                    "teachers"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Page number",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Page size",
                        "type": "integer"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "required": false,
                        "description": "Search in teacher ID, names, email and phone",
                        "type": "string"
                    },
                    {
                        "name": "gender",
                        "in": "query",
                        "required": false,
                        "description": "M or F",
                        "type": "string"
                    },
                    {
                        "name": "subjectId",
                        "in": "query",
                        "required": false,
                        "description": "Catalogue subject the teacher is assigned",
                        "type": "integer"
                    },
                    {
                        "name": "isActive",
                        "in": "query",
                        "required": false,
                        "description": "Filter by active flag",
                        "type": "boolean"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Teachers",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    }
                }
            }
        },
        "/teachers/{id}": {
            "get": {
                "summary": "Get a teacher",
                "tags": [
                    "teachers"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Teacher record ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Teacher",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Teacher not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a teacher",
                "tags": [
                    "teachers"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Teacher record ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Fields to change",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Teacher updated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Teacher not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "summary": "Deactivate a teacher",
                "tags": [
                    "teachers"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Teacher record ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Teacher deactivated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Teacher not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/teachers/{id}/status": {
            "patch": {
                "summary": "Activate or deactivate a teacher",
                "tags": [
                    "teachers"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Teacher record ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "New state",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Teacher updated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    }
                }
            }
        },
        "/terms/current": {
            "get": {
                "summary": "Current term",
                "tags": [
                    "academic"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Current term",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "No current term",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/terms/{id}": {
            "get": {
                "summary": "Get a term",
                "tags": [
                    "academic"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Term ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Term",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Term not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a term",
                "tags": [
                    "academic"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Term ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Term",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Term updated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Term not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/terms/{id}/current": {
            "post": {
                "summary": "Set the current term",
                "tags": [
                    "academic"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Term ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Current term set",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Term not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/vouchers": {
            "post": {
                "summary": "Generate vouchers",
                "tags": [
                    "vouchers"
                ],
                "description": "Serial numbers look like SABC-1A2B3C4D, PINs are 12 random digits. Student vouchers may target a class.",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Batch",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Vouchers generated",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Class not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "summary": "List vouchers",
                "tags": [
                    "vouchers"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "Page number",
                        "type": "integer"
                    },
                    {
                        "name": "size",
                        "in": "query",
                        "required": false,
                        "description": "Page size",
                        "type": "integer"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "required": false,
                        "description": "Search in serial number",
                        "type": "string"
                    },
                    {
                        "name": "kind",
                        "in": "query",
                        "required": false,
                        "description": "student or teacher",
                        "type": "string"
                    },
                    {
                        "name": "isUsed",
                        "in": "query",
                        "required": false,
                        "description": "Used or unused",
                        "type": "boolean"
                    },
                    {
                        "name": "classId",
                        "in": "query",
                        "required": false,
                        "description": "Target class",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Vouchers",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    }
                }
            }
        },
        "/vouchers/export": {
            "get": {
                "summary": "Export vouchers",
                "tags": [
                    "vouchers"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "text/csv"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "kind",
                        "in": "query",
                        "required": false,
                        "description": "student or teacher",
                        "type": "string"
                    },
                    {
                        "name": "isUsed",
                        "in": "query",
                        "required": false,
                        "description": "Used or unused",
                        "type": "boolean"
                    },
                    {
                        "name": "classId",
                        "in": "query",
                        "required": false,
                        "description": "Target class",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "vouchers CSV",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    }
                }
            }
        },
        "/vouchers/stats": {
            "get": {
                "summary": "Voucher statistics",
                "tags": [
                    "vouchers"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Statistics",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    }
                }
            }
        },
        "/vouchers/{id}": {
            "get": {
                "summary": "Get a voucher",
                "tags": [
                    "vouchers"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-School-ID",
                        "in": "header",
                        "required": false,
                        "description": "School to act on (superusers only)",
                        "type": "integer"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Voucher ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Voucher",
                        "schema": {
                            "$ref": "#/definitions/dto.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Voucher not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.APIResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "message": {
                    "type": "string"
                },
                "data": {},
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "dto.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "field": {
                    "type": "string"
                },
                "details": {}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "error": {
                    "$ref": "#/definitions/dto.ErrorDetail"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer JWT access token. Superusers pick the school with the X-School-ID header.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "School Management API",
	Description:      "Multi-school management backend: schools, academic structure, students, teachers, guardians and voucher-based registration.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
