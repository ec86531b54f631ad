// Package docs holds the swagger document served at /swagger. Regenerate with
// `swag init -g cmd/api/main.go` after changing controller annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "Service healthy", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "503": {"description": "Database unreachable", "schema": {"$ref": "#/definitions/dto.APIResponse"}}
                }
            }
        },
        "/students": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "Create a student",
                "parameters": [
                    {"description": "Student profile", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Student created", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Invalid request data", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Email already exists", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "Get a student",
                "parameters": [{"type": "integer", "format": "int64", "minimum": 1, "description": "Student ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Student retrieved", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "Update a student",
                "parameters": [
                    {"type": "integer", "format": "int64", "minimum": 1, "description": "Student ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Student updated", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/students/{id}/courses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "List courses",
                "parameters": [{"type": "integer", "format": "int64", "minimum": 1, "description": "Student ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Courses in enrollment order", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Add a course",
                "parameters": [
                    {"type": "integer", "format": "int64", "minimum": 1, "description": "Student ID", "name": "id", "in": "path", "required": true},
                    {"description": "Course", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Course created", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Invalid request data", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Course name already enrolled", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/courses/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Delete a course",
                "parameters": [{"type": "integer", "format": "int64", "minimum": 1, "description": "Course ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Course deleted", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "Course not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/simulations/run": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["simulations"],
                "summary": "Run a semester simulation",
                "parameters": [{"description": "Scenario", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {
                    "201": {"description": "Simulation stored", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Invalid scenario or no courses", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/simulations/batch": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["simulations"],
                "summary": "Run a batch of scenarios",
                "parameters": [{"description": "Scenarios", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {
                    "200": {"description": "Batch results", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Invalid scenarios or batch too large", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/simulations/compare": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["simulations"],
                "summary": "Compare two simulations",
                "parameters": [
                    {"type": "integer", "description": "First simulation ID", "name": "a", "in": "query", "required": true},
                    {"type": "integer", "description": "Second simulation ID", "name": "b", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "Comparison", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "Simulation not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/simulations/student/{studentId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["simulations"],
                "summary": "List a student's simulations",
                "parameters": [
                    {"type": "integer", "format": "int64", "minimum": 1, "description": "Student ID", "name": "studentId", "in": "path", "required": true},
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Simulations retrieved", "schema": {"$ref": "#/definitions/dto.APIResponse"}}
                }
            }
        },
        "/simulations/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["simulations"],
                "summary": "Get a simulation",
                "parameters": [{"type": "integer", "format": "int64", "minimum": 1, "description": "Simulation ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Simulation retrieved", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "Simulation not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["simulations"],
                "summary": "Delete a simulation",
                "parameters": [{"type": "integer", "format": "int64", "minimum": 1, "description": "Simulation ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Simulation deleted", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "Simulation not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/scenarios/optimize": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["scenarios"],
                "summary": "Optimize a weekly schedule",
                "parameters": [{"description": "Optimization request", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {
                    "200": {"description": "Optimal schedule", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Invalid request or no courses", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "success": {"type": "boolean", "example": true},
                "timestamp": {"type": "string", "example": "2025-04-23T12:01:05.123Z"}
            }
        },
        "dto.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "VAL_001"},
                "debugInfo": {"type": "string"},
                "details": {},
                "field": {"type": "string", "example": "numWeeks"},
                "message": {"type": "string", "example": "numWeeks must be between 4 and 20"},
                "severity": {"type": "string", "example": "ERROR"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/dto.ErrorDetail"},
                "success": {"type": "boolean", "example": false},
                "timestamp": {"type": "string", "example": "2025-04-23T12:01:05.123Z"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT token for authorization",
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
	Title:            "AcademicTwin API",
	Description:      "Semester simulation and schedule optimization for students",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
