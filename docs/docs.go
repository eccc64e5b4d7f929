// Package docs holds the OpenAPI document served at /swagger.
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
        "/process-claim": {
            "post": {
                "description": "Classify and extract every uploaded document, validate them together and decide the claim. The success body is the bare processing result, not the standard envelope.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["claims"],
                "summary": "Process a claim",
                "parameters": [
                    {
                        "type": "file",
                        "description": "Claim documents (repeat the field for each file)",
                        "name": "files",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "Claim decision", "schema": {"$ref": "#/definitions/domain.ProcessingResult"}},
                    "400": {"description": "No files uploaded", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "413": {"description": "Upload too large", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "500": {"description": "Processing failed", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/api/v1/claims": {
            "get": {
                "description": "List processed claims, newest first",
                "produces": ["application/json"],
                "tags": ["claims"],
                "summary": "List processed claims",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Offset for pagination", "name": "offset", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Limit for pagination (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "List of claims", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/api/v1/claims/export": {
            "get": {
                "description": "Download every processed claim as CSV or XLSX",
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["claims"],
                "summary": "Export processed claims",
                "parameters": [
                    {"type": "string", "default": "csv", "description": "csv or xlsx", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Claim report", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/api/v1/claims/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["claims"],
                "summary": "Get a processed claim",
                "parameters": [
                    {"type": "string", "description": "Claim ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Claim", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid claim ID", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "404": {"description": "Claim not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}}
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ClaimDecision": {
            "type": "object",
            "properties": {
                "reason": {"type": "string"},
                "status": {"type": "string", "enum": ["approved", "rejected", "manual_review"]}
            }
        },
        "domain.ExtractedData": {
            "type": "object",
            "properties": {
                "admission_date": {"type": "string"},
                "confidence_score": {"type": "number"},
                "diagnosis": {"type": "string"},
                "discharge_date": {"type": "string"},
                "document_type": {"type": "string", "enum": ["bill", "discharge_summary", "id_card", "pharmacy_bill", "claim_form", "unknown"]},
                "hospital_name": {"type": "string"},
                "patient_name": {"type": "string"},
                "policy_number": {"type": "string"},
                "total_amount": {"type": "number"}
            }
        },
        "domain.ValidationResult": {
            "type": "object",
            "properties": {
                "discrepancies": {"type": "array", "items": {"type": "string"}},
                "missing_documents": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.ProcessingResult": {
            "type": "object",
            "properties": {
                "claim_decision": {"$ref": "#/definitions/domain.ClaimDecision"},
                "documents": {"type": "array", "items": {"$ref": "#/definitions/domain.ExtractedData"}},
                "validation": {"$ref": "#/definitions/domain.ValidationResult"}
            }
        },
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.APIError"},
                "success": {"type": "boolean", "example": false}
            }
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "claim store not reachable"},
                "status": {"type": "string", "example": "ok"}
            }
        },
        "handler.PagMeta": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"$ref": "#/definitions/handler.PagMeta"},
                "success": {"type": "boolean", "example": true}
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
	Title:            "Medical Claim Processor API",
	Description:      "Classifies, extracts and validates medical claim documents and decides the claim.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
