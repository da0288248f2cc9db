package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Boleta API",
        "description": "Descriptive report-card service for preschool and primary grades",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Token issuance"},
        {"name": "Boletas", "description": "Report-card editing, review and printing"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/levels/classification": {
            "get": {
                "tags": ["Boletas"],
                "summary": "Suggest an academic level from a classroom name",
                "parameters": [
                    {"name": "salon", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/boletas/queue": {
            "get": {
                "tags": ["Boletas"],
                "summary": "List the review queue",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "lapsoId", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "description": "Set to csv for a CSV download"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/boletas/{studentId}/lapsos/{lapsoId}": {
            "get": {
                "tags": ["Boletas"],
                "summary": "Load boleta for editing",
                "parameters": [
                    {"name": "studentId", "in": "path", "type": "string", "required": true},
                    {"name": "lapsoId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown lapso", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Boletas"],
                "summary": "Save boleta",
                "parameters": [
                    {"name": "studentId", "in": "path", "type": "string", "required": true},
                    {"name": "lapsoId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveBoletaRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/boletas/{studentId}/lapsos/{lapsoId}/review": {
            "post": {
                "tags": ["Boletas"],
                "summary": "Confirm or reject a boleta",
                "parameters": [
                    {"name": "studentId", "in": "path", "type": "string", "required": true},
                    {"name": "lapsoId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Invalid transition", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/boletas/{studentId}/lapsos/{lapsoId}/document": {
            "get": {
                "tags": ["Boletas"],
                "summary": "Get the printable document model",
                "parameters": [
                    {"name": "studentId", "in": "path", "type": "string", "required": true},
                    {"name": "lapsoId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No boleta stored", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/boletas/{studentId}/lapsos/{lapsoId}/pdf": {
            "get": {
                "tags": ["Boletas"],
                "summary": "Download the boleta as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "studentId", "in": "path", "type": "string", "required": true},
                    {"name": "lapsoId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "PDF document"},
                    "404": {"description": "No boleta stored", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ReviewRequest": {
            "type": "object",
            "required": ["action"],
            "properties": {
                "action": {"type": "string", "enum": ["confirm", "reject"]}
            }
        },
        "SecondaryTeacherRequest": {
            "type": "object",
            "properties": {
                "nombre": {"type": "string"},
                "cedulaPrefijo": {"type": "string", "enum": ["V", "E"]},
                "cedulaNumero": {"type": "string"}
            }
        },
        "SaveBoletaRequest": {
            "type": "object",
            "required": ["nivel"],
            "properties": {
                "nivel": {"type": "string"},
                "turno": {"type": "string", "enum": ["Mañana", "Tarde"]},
                "indicadores": {
                    "type": "object",
                    "additionalProperties": {"type": "string"}
                },
                "recomendaciones": {
                    "type": "object",
                    "additionalProperties": {"type": "string"}
                },
                "rasgos": {"type": "string"},
                "habitosTrabajo": {"type": "string"},
                "recomendacionesDocente": {"type": "string"},
                "docenteAuxiliar": {"$ref": "#/definitions/SecondaryTeacherRequest"},
                "asistenciasManual": {"type": "string"},
                "inasistenciasManual": {"type": "string"},
                "diasHabiles": {"type": "string"},
                "signatoryName": {"type": "string"},
                "signatoryTitle": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
