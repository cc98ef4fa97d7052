package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Arsip API",
        "description": "Records-management backend for archival filing (klasifikasi, hal, berkas)",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Klasifikasi", "description": "Classification code reference"},
        {"name": "Arsip", "description": "Berkas record management"},
        {"name": "Dashboard", "description": "Aggregate statistics"},
        {"name": "Export", "description": "Tabular exports"}
    ],
    "paths": {
        "/hello": {
            "get": {
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/klasifikasi": {
            "get": {
                "tags": ["Klasifikasi"],
                "summary": "List classification codes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/berkas": {
            "get": {
                "tags": ["Arsip"],
                "summary": "List berkas with klasifikasi and hal relations",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/berkas/next-number": {
            "get": {
                "tags": ["Arsip"],
                "summary": "Suggest the next hal number for a classification code",
                "parameters": [
                    {"name": "kode_klasifikasi", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Missing code", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Unknown code", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/arsip/store": {
            "post": {
                "tags": ["Arsip"],
                "summary": "Submit a hal with its berkas items atomically",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StoreArsipRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/arsip/{id}": {
            "get": {
                "tags": ["Arsip"],
                "summary": "Fetch one berkas with relations",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "put": {
                "tags": ["Arsip"],
                "summary": "Update a berkas",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateBerkasRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "delete": {
                "tags": ["Arsip"],
                "summary": "Delete a berkas",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/export/arsip": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the berkas register as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "produces": ["text/csv", "application/pdf"],
                "responses": {
                    "200": {"description": "File attachment"},
                    "422": {"description": "Unknown format", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/dashboard/stats": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Totals per security level",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/dashboard/klasifikasi": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Berkas counts per classification code",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/dashboard/summary": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Combined statistics, klasifikasi counts and recent arsip",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/dashboard/stats/range": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Berkas created within a date range, with daily breakdown",
                "parameters": [
                    {"name": "start", "in": "query", "type": "string", "required": true},
                    {"name": "end", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "422": {"description": "Invalid range", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/dashboard/top-klasifikasi": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Most used classification codes",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/dashboard/keamanan-per-klasifikasi": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Security level breakdown per classification code",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "StoreArsipRequest": {
            "type": "object",
            "required": ["no_berkas", "judul_berkas", "items"],
            "properties": {
                "no_berkas": {"type": "string"},
                "judul_berkas": {"type": "string"},
                "items": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ArsipItemRequest"}
                }
            }
        },
        "ArsipItemRequest": {
            "type": "object",
            "required": ["no_arsip", "kode_klasifikasi", "uraian_informasi", "tanggal", "jumlah_angka", "jumlah_satuan", "tingkat_keamanan"],
            "properties": {
                "no_arsip": {"type": "string"},
                "kode_klasifikasi": {"type": "string"},
                "uraian_informasi": {"type": "string"},
                "tanggal": {"type": "string", "format": "date"},
                "jumlah_angka": {"type": "integer"},
                "jumlah_satuan": {"type": "string"},
                "tingkat_keamanan": {"type": "string"},
                "keterangan": {"type": "string"}
            }
        },
        "UpdateBerkasRequest": {
            "type": "object",
            "required": ["no_arsip", "kode_klasifikasi", "uraian_informasi", "tanggal", "jumlah", "satuan", "tingkat_keamanan"],
            "properties": {
                "no_arsip": {"type": "string"},
                "kode_klasifikasi": {"type": "string"},
                "uraian_informasi": {"type": "string"},
                "tanggal": {"type": "string", "format": "date"},
                "jumlah": {"type": "integer"},
                "satuan": {"type": "string"},
                "tingkat_keamanan": {"type": "string"},
                "keterangan": {"type": "string"}
            }
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "status": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"type": "object"},
                "errors": {"type": "object"}
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
