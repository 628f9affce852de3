// Package docs registers the storefront listing OpenAPI document with swag.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
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
                "summary": "Health check endpoint",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}}
            }
        },
        "/listing": {
            "get": {
                "produces": ["application/json"],
                "tags": ["listing"],
                "summary": "Get a listing page",
                "parameters": [
                    {"type": "string", "description": "Category slug", "name": "category", "in": "query", "required": true},
                    {"type": "string", "description": "Sort field", "name": "sortBy", "in": "query"},
                    {"type": "string", "description": "asc or desc", "name": "sortOrder", "in": "query"},
                    {"type": "integer", "description": "Page number, 1 or greater", "name": "page", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Repeated key:value filter", "name": "filter", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.StandardError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.StandardError"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            }
        },
        "/listing/state": {
            "get": {
                "produces": ["application/json"],
                "tags": ["listing"],
                "summary": "Get the session's listing state",
                "parameters": [
                    {"type": "string", "description": "Storefront session id (or sessionId cookie)", "name": "X-Session-ID", "in": "header"},
                    {"type": "string", "description": "Category slug", "name": "category", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            }
        },
        "/listing/intents": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["listing"],
                "summary": "Dispatch a listing intent",
                "parameters": [
                    {"type": "string", "description": "Storefront session id (or sessionId cookie)", "name": "X-Session-ID", "in": "header"},
                    {"description": "Intent", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.IntentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.StandardError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.StandardError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.StandardError"}},
                    "502": {"description": "Upstream failure; details hold the last good state", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            }
        },
        "/products/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Get a product with its variant selectors",
                "parameters": [{"type": "string", "description": "Product slug", "name": "slug", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProductResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.StandardError"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            }
        },
        "/products/{slug}/variants/resolve": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Resolve an attribute choice to a variant",
                "parameters": [
                    {"type": "string", "description": "Product slug", "name": "slug", "in": "path", "required": true},
                    {"type": "string", "description": "Attribute field code", "name": "fieldCode", "in": "query", "required": true},
                    {"type": "string", "description": "Attribute value", "name": "fieldValue", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.VariantResolveResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.StandardError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            }
        },
        "/products/{slug}/variants/stock": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Stock for an attribute value",
                "parameters": [
                    {"type": "string", "description": "Product slug", "name": "slug", "in": "path", "required": true},
                    {"type": "string", "description": "Attribute field code", "name": "fieldCode", "in": "query", "required": true},
                    {"type": "string", "description": "Attribute value", "name": "fieldValue", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/variants.StockSnapshot"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.StandardError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Admin login",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            }
        },
        "/admin/cache": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Purge cached catalog data",
                "parameters": [{"type": "string", "description": "Key pattern", "name": "pattern", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CachePurgeResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.StandardError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            }
        }
    },
    "definitions": {
        "errors.StandardError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "service": {"type": "string", "example": "storefront-listing"}
            }
        },
        "handlers.IntentRequest": {
            "type": "object",
            "required": ["category", "type"],
            "properties": {
                "category": {"type": "string", "example": "women/tops"},
                "type": {"type": "string", "example": "ADD_FILTER"},
                "sortBy": {"type": "string", "example": "price"},
                "sortOrder": {"type": "string", "example": "desc"},
                "page": {"type": "integer", "example": 2},
                "key": {"type": "string", "example": "brand"},
                "value": {"type": "string", "example": "Nike"}
            }
        },
        "handlers.ListingResponse": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "example": "women/tops"},
                "state": {"type": "object"},
                "query": {"type": "object"},
                "result": {"type": "object"},
                "hasResults": {"type": "boolean", "example": true},
                "totalPages": {"type": "integer", "example": 5},
                "hasMore": {"type": "boolean", "example": true},
                "fromSnapshot": {"type": "boolean", "example": false}
            }
        },
        "handlers.ProductResponse": {
            "type": "object",
            "properties": {
                "product": {"type": "object"},
                "selectors": {"type": "array", "items": {"type": "object"}},
                "currentAttributes": {"type": "object", "additionalProperties": {"type": "string"}},
                "fromSnapshot": {"type": "boolean", "example": false}
            }
        },
        "handlers.VariantResolveResponse": {
            "type": "object",
            "properties": {
                "slug": {"type": "string", "example": "products/tee-red"},
                "path": {"type": "string", "example": "/products/tee-red"},
                "stockCode": {"type": "string", "example": "TEE-RED-M"}
            }
        },
        "handlers.CachePurgeResponse": {
            "type": "object",
            "properties": {
                "pattern": {"type": "string", "example": "listing:*"},
                "status": {"type": "string", "example": "purged"}
            }
        },
        "variants.StockSnapshot": {
            "type": "object",
            "properties": {
                "stock": {"type": "integer"},
                "productId": {"type": "string"},
                "isPreOrderEnabled": {"type": "boolean"},
                "sellWithoutInventory": {"type": "boolean"},
                "stockCode": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8082",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Storefront Listing API",
	Description:      "Category listings with filter, sort and pagination state, and product variant selection, read through a cache in front of the commerce API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
