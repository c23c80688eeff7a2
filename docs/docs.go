// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/placements_api/main.go
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
    "paths": {
        "/api/placements": {
            "get": {"tags": ["placements"], "summary": "List placements", "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "name": "size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/placements/ingest": {
            "post": {"tags": ["placements"], "summary": "Ingest placements", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/router.IngestRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/api/placements/import": {
            "post": {"tags": ["placements"], "summary": "Import placements from a file", "consumes": ["multipart/form-data"], "produces": ["application/json"],
                "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/api/placements/search": {
            "get": {"tags": ["placements"], "summary": "Search placements", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "q", "in": "query", "required": true},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "name": "size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/placements/export.xlsx": {
            "get": {"tags": ["export"], "summary": "Export placements as xlsx",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/placements/export/google-sheet": {
            "post": {"tags": ["export"], "summary": "Export placements to a new Google Sheet", "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/placements/{id}": {
            "get": {"tags": ["placements"], "summary": "Get a placement",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["placements"], "summary": "Edit a placement",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.PlacementUpdate"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["placements"], "summary": "Delete a placement",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/api/placements/{id}/docket": {
            "post": {"tags": ["placements"], "summary": "Create a docket",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/api/settings/google": {
            "get": {"tags": ["settings"], "summary": "Show the Google integration status", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["settings"], "summary": "Save the Google API key",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/router.GoogleSettingsRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/google/auth": {
            "get": {"tags": ["google"], "summary": "Start the Google OAuth flow", "responses": {"302": {"description": "Found"}}}
        },
        "/google/auth/callback": {
            "get": {"tags": ["google"], "summary": "Finish the Google OAuth flow",
                "parameters": [
                    {"type": "string", "name": "state", "in": "query", "required": true},
                    {"type": "string", "name": "code", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        }
    },
    "definitions": {
        "router.IngestRequest": {
            "type": "object",
            "properties": {
                "input_type": {"type": "string", "enum": ["direct", "gdoc", "gsheet"], "example": "direct"},
                "text": {"type": "string"},
                "google_doc_id": {"type": "string"},
                "google_sheet_id": {"type": "string"}
            }
        },
        "router.GoogleSettingsRequest": {
            "type": "object",
            "properties": {"api_key": {"type": "string"}}
        },
        "domain.PlacementUpdate": {
            "type": "object",
            "properties": {
                "url": {"type": "string"},
                "title": {"type": "string"},
                "source": {"type": "string"},
                "publication_date": {"type": "string", "example": "2024-03-05"},
                "media_type": {"type": "string", "enum": ["article", "video", "podcast", "social", "blog", "press_release", "other"]},
                "notes": {"type": "string"}
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
	Title:            "Media Placements API",
	Description:      "Collects media placement links, enriches them with page metadata and builds dockets",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
