package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "GD Level Archive API",
        "description": "Search the level catalog, export levels as GMD and resolve level songs.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Levels", "description": "Level catalog search and exports"},
        {"name": "Songs", "description": "Song metadata and audio proxy"},
        {"name": "System", "description": "Health and runtime counters"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["System"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Catalog database unreachable"}
                }
            }
        },
        "/api/v1/levels": {
            "get": {
                "tags": ["Levels"],
                "summary": "Search levels",
                "parameters": [
                    {"name": "level_id", "in": "query", "type": "string", "description": "Exact level ID"},
                    {"name": "name", "in": "query", "type": "string", "description": "Level name"},
                    {"name": "username", "in": "query", "type": "string", "description": "Creator name"},
                    {"name": "description", "in": "query", "type": "string", "description": "Description"},
                    {"name": "song_id", "in": "query", "type": "string", "description": "Comma separated song IDs, all required"},
                    {"name": "original_id", "in": "query", "type": "string", "description": "Original level ID"},
                    {"name": "version", "in": "query", "type": "string", "description": "Level version"},
                    {"name": "length", "in": "query", "type": "string", "description": "Tiny, Short, Medium, Long or XL"},
                    {"name": "rcoins", "in": "query", "type": "integer", "description": "User coins"},
                    {"name": "scoins", "in": "query", "type": "integer", "description": "Silver coins"},
                    {"name": "min_editor_time", "in": "query", "type": "integer", "description": "Minimum editor time"},
                    {"name": "max_editor_time", "in": "query", "type": "integer", "description": "Maximum editor time"},
                    {"name": "editor_ctime", "in": "query", "type": "integer", "description": "Editor time including copies"},
                    {"name": "requested_rating", "in": "query", "type": "string", "description": "Requested stars"},
                    {"name": "two_player", "in": "query", "type": "string", "description": "Yes or No"},
                    {"name": "min_object_count", "in": "query", "type": "integer", "description": "Minimum object count"},
                    {"name": "max_object_count", "in": "query", "type": "integer", "description": "Maximum object count"},
                    {"name": "min_cp", "in": "query", "type": "integer", "description": "Minimum creator points"},
                    {"name": "max_cp", "in": "query", "type": "integer", "description": "Maximum creator points"},
                    {"name": "min_size", "in": "query", "type": "integer", "description": "Minimum size in bytes"},
                    {"name": "max_size", "in": "query", "type": "integer", "description": "Maximum size in bytes"},
                    {"name": "search_mode", "in": "query", "type": "string", "description": "contains or exclusive"},
                    {"name": "case_sensitive", "in": "query", "type": "string", "description": "sensitive or insensitive"},
                    {"name": "sort_by", "in": "query", "type": "string", "description": "ID, CreatorPoints or Size"},
                    {"name": "sort_order", "in": "query", "type": "string", "description": "asc or desc"},
                    {"name": "page", "in": "query", "type": "integer", "description": "Page"},
                    {"name": "page_size", "in": "query", "type": "integer", "description": "Page size"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LevelListEnvelope"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/levels/export": {
            "get": {
                "tags": ["Levels"],
                "summary": "Export a page of search results",
                "description": "Accepts every search parameter of /api/v1/levels.",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File attachment", "schema": {"type": "file"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/levels/{id}": {
            "get": {
                "tags": ["Levels"],
                "summary": "Get level detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/levels/{id}/gmd": {
            "get": {
                "tags": ["Levels"],
                "summary": "Download a level as GMD",
                "description": "Also served at /download/{id}.",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "GMD attachment", "schema": {"type": "file"}},
                    "404": {"description": "Level file not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/songs/{id}": {
            "get": {
                "tags": ["Songs"],
                "summary": "Resolve song metadata",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Song is not available", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/songs/{id}/download": {
            "get": {
                "tags": ["Songs"],
                "summary": "Download song audio",
                "description": "Also served at /downloadSong/{id}.",
                "produces": ["audio/mpeg", "audio/ogg"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Audio attachment", "schema": {"type": "file"}},
                    "502": {"description": "Song is not available", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/stats": {
            "get": {
                "tags": ["System"],
                "summary": "Runtime counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Level": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "username": {"type": "string"},
                "creator_points": {"type": "string"},
                "description": {"type": "string"},
                "size": {"type": "string", "example": "11.33 KB"},
                "size_bytes": {"type": "integer"},
                "song_ids": {"type": "string"},
                "original_id": {"type": "string"},
                "r_coins": {"type": "string"},
                "s_coins": {"type": "string"},
                "version": {"type": "string"},
                "length": {"type": "string"},
                "editor_time": {"type": "string"},
                "editor_c_time": {"type": "string"},
                "requested_rating": {"type": "string"},
                "two_player": {"type": "string"},
                "object_count": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        },
        "LevelListEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Level"}},
                "pagination": {"$ref": "#/definitions/Pagination"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
