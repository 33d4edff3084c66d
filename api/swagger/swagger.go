package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Acadly Timetable API",
        "description": "Scheduling conflict engine and faculty workload accounting",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Conflicts", "description": "Scheduling conflict detection"},
        {"name": "Schedule Entries", "description": "Timetable entry lifecycle"},
        {"name": "Workload", "description": "Faculty workload accounting"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/conflicts/check": {
            "post": {
                "tags": ["Conflicts"],
                "summary": "Check a candidate entry for scheduling conflicts",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckConflictsRequest"}}
                ],
                "responses": {
                    "200": {"description": "Conflict report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule-entries": {
            "get": {
                "tags": ["Schedule Entries"],
                "summary": "List schedule entries",
                "parameters": [
                    {"name": "batchId", "in": "query", "type": "string"},
                    {"name": "facultyId", "in": "query", "type": "string"},
                    {"name": "timeSlotId", "in": "query", "type": "string"},
                    {"name": "dayOfWeek", "in": "query", "type": "string"},
                    {"name": "entryType", "in": "query", "type": "string"},
                    {"name": "activeOnly", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Schedule Entries"],
                "summary": "Create schedule entry",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateScheduleEntryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule-entries/{id}": {
            "put": {
                "tags": ["Schedule Entries"],
                "summary": "Update schedule entry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateScheduleEntryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Schedule Entries"],
                "summary": "Deactivate schedule entry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/batches/{id}/schedule-entries": {
            "get": {
                "tags": ["Schedule Entries"],
                "summary": "List schedule entries for a batch",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/faculty/{id}/schedule-entries": {
            "get": {
                "tags": ["Schedule Entries"],
                "summary": "List schedule entries taught by a faculty member",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/faculty/{id}/workload": {
            "get": {
                "tags": ["Workload"],
                "summary": "Get a faculty member's current teaching workload",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "departmentId", "in": "query", "required": true, "type": "string"},
                    {"name": "refresh", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/faculty/{id}/workload/check-admission": {
            "post": {
                "tags": ["Workload"],
                "summary": "Check whether a faculty member can take additional credits",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckAdmissionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ScheduleEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "batch_id": {"type": "string"},
                "subject_id": {"type": "string"},
                "faculty_id": {"type": "string"},
                "time_slot_id": {"type": "string"},
                "day_of_week": {"type": "string"},
                "date": {"type": "string"},
                "entry_type": {"type": "string"},
                "title": {"type": "string"},
                "is_active": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "Conflict": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["EXACT_DUPLICATE", "BATCH_DOUBLE_BOOKING", "FACULTY_CONFLICT", "HOLIDAY_SCHEDULING", "EXAM_PERIOD_CONFLICT"]},
                "severity": {"type": "string", "enum": ["BLOCKING", "INFORMATIONAL"]},
                "message": {"type": "string"},
                "entries": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ScheduleEntry"}
                }
            }
        },
        "ConflictReport": {
            "type": "object",
            "properties": {
                "conflicts": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Conflict"}
                }
            }
        },
        "CheckConflictsRequest": {
            "type": "object",
            "properties": {
                "batch_id": {"type": "string"},
                "subject_id": {"type": "string"},
                "faculty_id": {"type": "string"},
                "time_slot_id": {"type": "string"},
                "day_of_week": {"type": "string"},
                "date": {"type": "string"},
                "entry_type": {"type": "string"},
                "title": {"type": "string"},
                "exclude_entry_id": {"type": "string"}
            },
            "required": ["batch_id", "time_slot_id", "day_of_week", "entry_type"]
        },
        "CreateScheduleEntryRequest": {
            "type": "object",
            "properties": {
                "batch_id": {"type": "string"},
                "subject_id": {"type": "string"},
                "faculty_id": {"type": "string"},
                "time_slot_id": {"type": "string"},
                "day_of_week": {"type": "string"},
                "date": {"type": "string"},
                "entry_type": {"type": "string"},
                "title": {"type": "string"},
                "override": {"type": "boolean"}
            },
            "required": ["batch_id", "time_slot_id", "day_of_week", "entry_type"]
        },
        "FacultyWorkload": {
            "type": "object",
            "properties": {
                "faculty_id": {"type": "string"},
                "department_id": {"type": "string"},
                "total_credits": {"type": "number"},
                "total_hours": {"type": "number"},
                "max_credits": {"type": "number"},
                "max_hours": {"type": "number"},
                "credit_percentage": {"type": "number"},
                "hour_percentage": {"type": "number"},
                "workload_level": {"type": "string", "enum": ["LOW", "NORMAL", "HIGH", "OVERLOAD"]}
            }
        },
        "CheckAdmissionRequest": {
            "type": "object",
            "properties": {
                "additional_credits": {"type": "number"},
                "department_id": {"type": "string"}
            },
            "required": ["department_id"]
        },
        "AdmissionDecision": {
            "type": "object",
            "properties": {
                "allowed": {"type": "boolean"},
                "reason": {"type": "string"},
                "projected_credit_percentage": {"type": "number"},
                "current_workload": {"$ref": "#/definitions/FacultyWorkload"}
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
