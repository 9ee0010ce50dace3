// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

// @title           Boardsync API
// @version         1.0
// @description     Collaborative boards with ordered lists and cards, kept in sync over websockets.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description Registration, login and stats

// @tag.name Boards
// @tag.description Boards, members and presence

// @tag.name Lists
// @tag.description Lists and list ordering

// @tag.name Cards
// @tag.description Cards, moves, assignees and comments

// @tag.name Connectors
// @tag.description Lines drawn between board elements

// @tag.name Realtime
// @tag.description Websocket event stream

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
            "description": "Type \"Bearer\" followed by a space and JWT token",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/register": {"post": {"tags": ["Users"], "summary": "Register a user", "responses": {"201": {"description": "Created"}, "409": {"description": "Email taken"}}}},
        "/login": {"post": {"tags": ["Users"], "summary": "Log in", "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}}}},
        "/users/stats": {"get": {"tags": ["Users"], "security": [{"BearerAuth": []}], "summary": "Counts of boards, lists and cards visible to the caller", "responses": {"200": {"description": "OK"}}}},
        "/boards": {
            "get": {"tags": ["Boards"], "security": [{"BearerAuth": []}], "summary": "Boards the caller owns or is a member of", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Boards"], "security": [{"BearerAuth": []}], "summary": "Create a board", "responses": {"201": {"description": "Created"}}}
        },
        "/boards/{id}": {
            "get": {"tags": ["Boards"], "security": [{"BearerAuth": []}], "summary": "Board snapshot with ordered lists and cards", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["Boards"], "security": [{"BearerAuth": []}], "summary": "Update board title, description or color", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Boards"], "security": [{"BearerAuth": []}], "summary": "Delete a board and everything on it (owner only)", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/boards/{id}/members": {"post": {"tags": ["Boards"], "security": [{"BearerAuth": []}], "summary": "Add a registered user to the board by email", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/boards/{id}/members/{userId}": {"delete": {"tags": ["Boards"], "security": [{"BearerAuth": []}], "summary": "Remove a member from the board (owner only)", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "string", "name": "userId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/boards/{id}/presence": {"get": {"tags": ["Boards"], "security": [{"BearerAuth": []}], "summary": "Users currently connected to the board", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/lists": {"post": {"tags": ["Lists"], "security": [{"BearerAuth": []}], "summary": "Append a list to a board", "responses": {"201": {"description": "Created"}}}},
        "/lists/reorder": {"post": {"tags": ["Lists"], "security": [{"BearerAuth": []}], "summary": "Persist a new order for all lists of a board", "responses": {"200": {"description": "OK"}, "409": {"description": "Order is stale"}}}},
        "/lists/{id}": {
            "put": {"tags": ["Lists"], "security": [{"BearerAuth": []}], "summary": "Rename a list", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Lists"], "security": [{"BearerAuth": []}], "summary": "Delete a list and its cards", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/cards": {"post": {"tags": ["Cards"], "security": [{"BearerAuth": []}], "summary": "Append a card to a list", "responses": {"201": {"description": "Created"}}}},
        "/cards/{id}": {
            "put": {"tags": ["Cards"], "security": [{"BearerAuth": []}], "summary": "Edit card fields", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Cards"], "security": [{"BearerAuth": []}], "summary": "Delete a card", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/cards/{id}/move": {"post": {"tags": ["Cards"], "security": [{"BearerAuth": []}], "summary": "Move a card within or between lists of the same board", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid move"}}}},
        "/cards/{id}/assignees": {"post": {"tags": ["Cards"], "security": [{"BearerAuth": []}], "summary": "Assign a user to a card", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/cards/{id}/assignees/{userId}": {"delete": {"tags": ["Cards"], "security": [{"BearerAuth": []}], "summary": "Unassign a user from a card", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "string", "name": "userId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/cards/{id}/comments": {"post": {"tags": ["Cards"], "security": [{"BearerAuth": []}], "summary": "Comment on a card", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}}}},
        "/connectors": {"post": {"tags": ["Connectors"], "security": [{"BearerAuth": []}], "summary": "Draw a connector between two board elements", "responses": {"201": {"description": "Created"}}}},
        "/connectors/board/{boardId}": {"get": {"tags": ["Connectors"], "security": [{"BearerAuth": []}], "summary": "Connectors drawn on a board", "parameters": [{"type": "string", "name": "boardId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/connectors/{id}": {
            "put": {"tags": ["Connectors"], "security": [{"BearerAuth": []}], "summary": "Change connector endpoints, styling or coordinates", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Connectors"], "security": [{"BearerAuth": []}], "summary": "Remove a connector", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/ws": {"get": {"tags": ["Realtime"], "security": [{"BearerAuth": []}], "summary": "Realtime event stream (websocket)", "parameters": [{"type": "string", "name": "token", "in": "query"}], "responses": {"101": {"description": "Switching protocols"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Boardsync API",
	Description:      "Collaborative boards with ordered lists and cards, kept in sync over websockets.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
