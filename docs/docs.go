// Package docs registers the Swagger document served under /swagger.
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
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/items/search": {
            "get": {
                "description": "Case-insensitive substring match on item names, alphabetical, at most 25 results",
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Search items",
                "parameters": [
                    {"type": "string", "description": "Name fragment (max 64 characters)", "name": "query", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.searchResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/items/latest": {
            "get": {
                "description": "Cached latest high/low quote with a freshness flag",
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Latest price",
                "parameters": [
                    {"type": "integer", "description": "Item id", "name": "id", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.latestResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/items/profile": {
            "get": {
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Item profile",
                "parameters": [
                    {"type": "integer", "description": "Item id", "name": "id", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.Profile"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/items/history": {
            "get": {
                "description": "Mid price, total volume and VWAP per upstream bucket, in upstream order",
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Price history",
                "parameters": [
                    {"type": "integer", "description": "Item id", "name": "id", "in": "query", "required": true},
                    {"type": "string", "default": "5m", "description": "5m, 1h, 6h or 24h", "name": "timestep", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.historyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/home/top-expensive": {
            "get": {
                "produces": ["application/json"],
                "tags": ["home"],
                "summary": "Most expensive items",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/home/top-spread": {
            "get": {
                "produces": ["application/json"],
                "tags": ["home"],
                "summary": "Widest spreads",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/home/top-alch": {
            "get": {
                "description": "Empty when either reference rune has no cached price",
                "produces": ["application/json"],
                "tags": ["home"],
                "summary": "High-alchemy profit",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/admin/refresh-prices": {
            "post": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Refresh latest prices",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.refreshResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/admin/refresh-mapping": {
            "post": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Refresh catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.refreshResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/admin/refresh-snapshot-intervals": {
            "post": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Refresh interval snapshots",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.refreshResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/admin/tasks/refresh-market": {
            "post": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Refresh market",
                "parameters": [
                    {"type": "string", "description": "Cron secret", "name": "secret", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "catalog.Entry": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "members": {"type": "boolean"},
                "examine": {"type": "string"},
                "highalch": {"type": "integer"},
                "lowalch": {"type": "integer"},
                "itemLimit": {"type": "integer"},
                "updatedAt": {"type": "string"}
            }
        },
        "catalog.Profile": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "members": {"type": "boolean"},
                "examine": {"type": "string"},
                "highalch": {"type": "integer"},
                "lowalch": {"type": "integer"},
                "itemLimit": {"type": "integer"},
                "high": {"type": "number"},
                "low": {"type": "number"},
                "highTime": {"type": "integer"},
                "lowTime": {"type": "integer"},
                "priceUpdatedAt": {"type": "string"},
                "fiveMinute": {"$ref": "#/definitions/prices.WindowQuote"},
                "oneHour": {"$ref": "#/definitions/prices.WindowQuote"},
                "oneDay": {"$ref": "#/definitions/prices.WindowQuote"},
                "snapshotUpdatedAt": {"type": "string"}
            }
        },
        "prices.WindowQuote": {
            "type": "object",
            "properties": {
                "avgHighPrice": {"type": "number"},
                "highPriceVolume": {"type": "integer"},
                "avgLowPrice": {"type": "number"},
                "lowPriceVolume": {"type": "integer"}
            }
        },
        "history.Point": {
            "type": "object",
            "properties": {
                "ts": {"type": "integer"},
                "avgHigh": {"type": "number"},
                "avgLow": {"type": "number"},
                "mid": {"type": "number"},
                "highVolume": {"type": "number"},
                "lowVolume": {"type": "number"},
                "totalVolume": {"type": "number"},
                "vwap": {"type": "integer"}
            }
        },
        "http.searchResponse": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "count": {"type": "integer"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/catalog.Entry"}}
            }
        },
        "http.latestResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "high": {"type": "number"},
                "low": {"type": "number"},
                "highTime": {"type": "integer"},
                "lowTime": {"type": "integer"},
                "updatedAt": {"type": "string"},
                "isFresh": {"type": "boolean"},
                "source": {"type": "string"}
            }
        },
        "http.historyResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "timestep": {"type": "string"},
                "points": {"type": "array", "items": {"$ref": "#/definitions/history.Point"}}
            }
        },
        "http.refreshResponse": {
            "type": "object",
            "properties": {
                "updatedCount": {"type": "integer"},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "OSRS Grand Exchange Prices API",
	Description:      "Cached Grand Exchange prices, catalog search, rankings and price history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
