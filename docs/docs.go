// Package docs holds the OpenAPI description served at /swagger/*any.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "https://github.com/guttosm/tickerpulse",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/guttosm/tickerpulse",
            "email": "support@example.com"
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
        "/api/v1/presets": {
            "get": {
                "description": "Top-10 stocks and indices offered by the dashboard",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Preset ticker lists",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PresetsResponse"}}
                }
            }
        },
        "/api/v1/compare": {
            "get": {
                "description": "Cumulative return and final value per ticker, best first",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Performance table",
                "parameters": [
                    {"type": "string", "example": "custom", "description": "Dataset: custom, top10 or indices", "name": "mode", "in": "query"},
                    {"type": "string", "example": "AAPL,MSFT,TSLA", "description": "Comma separated tickers", "name": "tickers", "in": "query"},
                    {"type": "integer", "example": 2020, "description": "Single year", "name": "year", "in": "query"},
                    {"type": "integer", "example": 2015, "description": "Range start year", "name": "start_year", "in": "query"},
                    {"type": "integer", "example": 2024, "description": "Range end year", "name": "end_year", "in": "query"},
                    {"type": "number", "example": 100, "description": "Initial investment (USD)", "name": "investment", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CompareResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/yearly": {
            "get": {
                "description": "First-to-last close return for each calendar year of the period",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Yearly returns",
                "parameters": [
                    {"type": "string", "example": "AAPL", "description": "Ticker", "name": "ticker", "in": "query", "required": true},
                    {"type": "integer", "description": "Single year", "name": "year", "in": "query"},
                    {"type": "integer", "description": "Range start year", "name": "start_year", "in": "query"},
                    {"type": "integer", "description": "Range end year", "name": "end_year", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.YearlyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/head-to-head": {
            "get": {
                "description": "Yearly wins between two tickers",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Head-to-head scoreboard",
                "parameters": [
                    {"type": "string", "example": "AAPL", "name": "a", "in": "query", "required": true},
                    {"type": "string", "example": "MSFT", "name": "b", "in": "query", "required": true},
                    {"type": "integer", "name": "start_year", "in": "query"},
                    {"type": "integer", "name": "end_year", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HeadToHeadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/charts/closing.png": {
            "get": {
                "produces": ["image/png"],
                "tags": ["charts"],
                "summary": "Closing price chart",
                "responses": {"200": {"description": "PNG"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/charts/normalized.png": {
            "get": {
                "produces": ["image/png"],
                "tags": ["charts"],
                "summary": "Normalized price chart (base 100)",
                "responses": {"200": {"description": "PNG"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/charts/head-to-head.png": {
            "get": {
                "produces": ["image/png"],
                "tags": ["charts"],
                "summary": "Yearly returns bar chart for two tickers",
                "responses": {"200": {"description": "PNG"}, "404": {"description": "Not Found"}}
            }
        },
        "/healthz": {
            "get": {
                "description": "Always returns OK if the service is running",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/readyz": {
            "get": {
                "description": "Returns ready if the service dependencies are reachable",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "ticker is required"},
                "error": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "dto.PresetsResponse": {
            "type": "object",
            "properties": {
                "top10": {"type": "array", "items": {"type": "string"}},
                "indices": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.Performance": {
            "type": "object",
            "properties": {
                "ticker": {"type": "string", "example": "AAPL"},
                "return_pct": {"type": "number", "example": 48.18},
                "final_value": {"type": "number", "example": 148.18},
                "start_price": {"type": "number"},
                "end_price": {"type": "number"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"}
            }
        },
        "dto.CompareResponse": {
            "type": "object",
            "properties": {
                "mode": {"type": "string", "example": "custom"},
                "period": {"type": "string", "example": "2015-2024"},
                "investment": {"type": "number", "example": 100},
                "value_label": {"type": "string", "example": "Value of $100"},
                "tickers": {"type": "array", "items": {"type": "string"}},
                "rows": {"type": "array", "items": {"$ref": "#/definitions/models.Performance"}},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.YearlyReturn": {
            "type": "object",
            "properties": {
                "year": {"type": "integer", "example": 2020},
                "return_pct": {"type": "number", "example": 80.75}
            }
        },
        "dto.YearlyResponse": {
            "type": "object",
            "properties": {
                "ticker": {"type": "string"},
                "period": {"type": "string"},
                "years": {"type": "array", "items": {"$ref": "#/definitions/models.YearlyReturn"}}
            }
        },
        "models.HeadToHeadYear": {
            "type": "object",
            "properties": {
                "year": {"type": "integer"},
                "return_a": {"type": "number"},
                "return_b": {"type": "number"},
                "winner": {"type": "string"}
            }
        },
        "models.Scoreboard": {
            "type": "object",
            "properties": {
                "a": {"type": "string"},
                "b": {"type": "string"},
                "wins_a": {"type": "integer"},
                "wins_b": {"type": "integer"},
                "ties": {"type": "integer"},
                "years": {"type": "array", "items": {"$ref": "#/definitions/models.HeadToHeadYear"}}
            }
        },
        "dto.HeadToHeadResponse": {
            "type": "object",
            "properties": {
                "period": {"type": "string"},
                "leader": {"type": "string"},
                "scoreboard": {"$ref": "#/definitions/models.Scoreboard"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "tickerpulse API",
	Description:      "Stock and index comparison: cumulative returns, yearly head-to-head and price charts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
