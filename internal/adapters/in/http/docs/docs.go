// Package docs registers the API's swagger document with swag.
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
        "/pricing/calculate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pricing"],
                "summary": "Quote a decoration request",
                "parameters": [
                    {"description": "Decoration request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/QuoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "null when quantity is not positive", "schema": {"$ref": "#/definitions/PricingResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/pricing/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pricing"],
                "summary": "Pricing service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PricingHealthResponse"}}
                }
            }
        },
        "/pricing/methods": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pricing"],
                "summary": "Decoration methods offered to the UI",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Option"}}}
                }
            }
        },
        "/pricing/locations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pricing"],
                "summary": "Print locations offered to the UI",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Option"}}}
                }
            }
        },
        "/pricing/sessions/{sessionId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pricing"],
                "summary": "Latest applied quote of a session",
                "parameters": [
                    {"type": "string", "description": "Client session UUID", "name": "sessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SnapshotResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pricing"],
                "summary": "Submit a debounced quote request",
                "parameters": [
                    {"type": "string", "description": "Client session UUID", "name": "sessionId", "in": "path", "required": true},
                    {"description": "Decoration request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/QuoteRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/SubmitQuoteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/workflow/statuses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["workflow"],
                "summary": "Workflow statuses grouped by phase",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/PhaseGroup"}}}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Order with normalized status, history and line items",
                "parameters": [
                    {"type": "string", "description": "Order ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/OrderResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/orders/{id}/status": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Move an order to another workflow status",
                "parameters": [
                    {"type": "string", "description": "Order ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "User making the change", "name": "X-Actor-ID", "in": "header"},
                    {"description": "New status", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangeStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/OrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "order holds the unchanged order", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "retryable": {"type": "boolean"},
                "order": {"$ref": "#/definitions/OrderResponse"}
            }
        },
        "Option": {
            "type": "object",
            "properties": {
                "value": {"type": "string"},
                "label": {"type": "string"}
            }
        },
        "QuoteRequest": {
            "type": "object",
            "properties": {
                "method": {"type": "string"},
                "quantity": {"type": "integer"},
                "colorCount": {"type": "integer"},
                "stitchCount": {"type": "integer"},
                "locations": {"type": "array", "items": {"type": "string"}},
                "garmentType": {"type": "string", "enum": ["light", "dark", "poly"]},
                "customerType": {"type": "string", "enum": ["new", "repeat"]},
                "rush": {"type": "boolean"},
                "setupNew": {"type": "boolean"}
            }
        },
        "PricingLineItem": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "unitCost": {"type": "number"},
                "qty": {"type": "integer"},
                "total": {"type": "number"},
                "discount": {"type": "number"}
            }
        },
        "PricingResult": {
            "type": "object",
            "properties": {
                "unitPrice": {"type": "number"},
                "totalPrice": {"type": "number"},
                "subtotal": {"type": "number"},
                "marginPct": {"type": "number"},
                "breakdown": {
                    "type": "object",
                    "properties": {
                        "baseCost": {"type": "number"},
                        "locationSurcharges": {"type": "number"},
                        "colorAdjustments": {"type": "number"},
                        "volumeDiscounts": {"type": "number"},
                        "marginAmount": {"type": "number"}
                    }
                },
                "lineItems": {"type": "array", "items": {"$ref": "#/definitions/PricingLineItem"}},
                "rulesApplied": {"type": "array", "items": {"type": "string"}},
                "calculationTimeMs": {"type": "integer"},
                "source": {"type": "string", "enum": ["remote", "fallback"]}
            }
        },
        "PricingHealthResponse": {
            "type": "object",
            "properties": {
                "healthy": {"type": "boolean"},
                "usingFallback": {"type": "boolean"},
                "checkedAt": {"type": "string", "format": "date-time"},
                "error": {"type": "string"}
            }
        },
        "SubmitQuoteResponse": {
            "type": "object",
            "properties": {
                "sessionId": {"type": "string"},
                "seq": {"type": "integer"}
            }
        },
        "SnapshotResponse": {
            "type": "object",
            "properties": {
                "seq": {"type": "integer"},
                "pending": {"type": "boolean"},
                "result": {"$ref": "#/definitions/PricingResult"},
                "error": {"type": "string"},
                "appliedAt": {"type": "string", "format": "date-time"}
            }
        },
        "PhaseGroup": {
            "type": "object",
            "properties": {
                "phase": {"type": "string"},
                "color": {"type": "string"},
                "statuses": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ChangeStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string"}
            }
        },
        "StatusChange": {
            "type": "object",
            "properties": {
                "from": {"type": "string"},
                "to": {"type": "string"},
                "changedBy": {"type": "string"},
                "changedAt": {"type": "string", "format": "date-time"}
            }
        },
        "LineItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "styleNumber": {"type": "string"},
                "description": {"type": "string"},
                "color": {"type": "string"},
                "category": {"type": "string"},
                "quantity": {"type": "integer"},
                "unitPrice": {"type": "number"},
                "totalCost": {"type": "number"},
                "sizes": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "label": {"type": "string"},
                            "count": {"type": "integer"}
                        }
                    }
                }
            }
        },
        "OrderResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "orderNumber": {"type": "string"},
                "orderNickname": {"type": "string"},
                "status": {"type": "string"},
                "backendStatus": {"type": "string"},
                "phase": {"type": "string"},
                "phaseColor": {"type": "string"},
                "totalAmount": {"type": "number"},
                "amountPaid": {"type": "number"},
                "amountOutstanding": {"type": "number"},
                "dueDate": {"type": "string", "format": "date-time"},
                "customerDueDate": {"type": "string", "format": "date-time"},
                "createdAt": {"type": "string", "format": "date-time"},
                "statusHistory": {"type": "array", "items": {"$ref": "#/definitions/StatusChange"}},
                "customer": {
                    "type": "object",
                    "properties": {
                        "id": {"type": "string"},
                        "name": {"type": "string"},
                        "email": {"type": "string"},
                        "phone": {"type": "string"},
                        "company": {"type": "string"}
                    }
                },
                "lineItems": {"type": "array", "items": {"$ref": "#/definitions/LineItem"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Print shop pricing & workflow API",
	Description:      "Decoration quotes with fallback pricing and order status workflow.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
