// Package docs provides Swagger documentation for the Insurance Premium API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/MrKriegler/insurance-premium"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "consumes": ["application/json"],
    "produces": ["application/json"],
    "paths": {
        "/api/insurance": {
            "post": {
                "tags": ["Applications"],
                "summary": "Apply for insurance",
                "description": "Validates the request, calculates the premium and stores the application.\n\nBase premium: AUTO 5000, MEDICAL 7000, HOUSE 10000. A customer name longer than 10 characters gets a 5% discount; an address containing \"Metro\" then gets a 10% surcharge. The result is rounded half up once, after both modifiers.",
                "operationId": "createApplication",
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ApplicationRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Application created",
                        "schema": {"$ref": "#/definitions/Application"}
                    },
                    "400": {
                        "description": "Missing, empty or invalid field",
                        "schema": {"$ref": "#/definitions/Error"}
                    },
                    "413": {
                        "description": "Request body too large",
                        "schema": {"$ref": "#/definitions/Error"}
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {"$ref": "#/definitions/Error"}
                    }
                }
            }
        },
        "/api/insurance/{application_id}": {
            "get": {
                "tags": ["Applications"],
                "summary": "Get an application",
                "operationId": "getApplication",
                "parameters": [
                    {
                        "name": "application_id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Successful response",
                        "schema": {"$ref": "#/definitions/Application"}
                    },
                    "404": {
                        "description": "Application not found",
                        "schema": {"$ref": "#/definitions/Error"}
                    }
                }
            }
        },
        "/api/quotes": {
            "post": {
                "tags": ["Quotes"],
                "summary": "Preview a premium",
                "description": "Validates the request and returns the premium breakdown. Nothing is stored.",
                "operationId": "quotePremium",
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ApplicationRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Premium breakdown",
                        "schema": {"$ref": "#/definitions/Breakdown"}
                    },
                    "400": {
                        "description": "Missing, empty or invalid field",
                        "schema": {"$ref": "#/definitions/Error"}
                    }
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness probe",
                "produces": ["text/plain"],
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/readyz": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness probe",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "ready"},
                    "503": {"description": "store unreachable"}
                }
            }
        }
    },
    "definitions": {
        "ApplicationRequest": {
            "type": "object",
            "required": ["customerName", "customerAddress", "insuranceType"],
            "properties": {
                "customerName": {"type": "string", "example": "JohnDoeSmith"},
                "customerAddress": {"type": "string", "example": "123 Metro Street"},
                "insuranceType": {"type": "string", "enum": ["AUTO", "MEDICAL", "HOUSE"]}
            }
        },
        "Application": {
            "type": "object",
            "properties": {
                "applicationId": {"type": "string", "format": "uuid"},
                "customerName": {"type": "string", "example": "JohnDoeSmith"},
                "customerAddress": {"type": "string", "example": "123 Metro Street"},
                "insuranceType": {"type": "string", "enum": ["AUTO", "MEDICAL", "HOUSE"]},
                "calculatedPremium": {"type": "integer", "format": "int64", "example": 5225},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "Breakdown": {
            "type": "object",
            "properties": {
                "base": {"type": "integer", "format": "int64", "example": 5000},
                "modifiers": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "name": {"type": "string", "example": "metro_surcharge"},
                            "factor": {"type": "string", "example": "1.10"}
                        }
                    }
                },
                "premium": {"type": "integer", "format": "int64", "example": 5225}
            }
        },
        "Error": {
            "type": "object",
            "properties": {
                "errorCode": {"type": "string", "example": "VALIDATION_ERROR"},
                "message": {"type": "string", "example": "validation error: customerName is required"}
            }
        }
    },
    "tags": [
        {"name": "Applications", "description": "Premium calculation and application records"},
        {"name": "Quotes", "description": "Premium previews"},
        {"name": "Health", "description": "Liveness and readiness"}
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Insurance Premium API",
	Description:      "Calculates insurance premiums and records applications",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
