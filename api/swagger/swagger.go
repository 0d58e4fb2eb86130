package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "GoDrive Mobile Gateway",
        "description": "Mobile gateway for the GoDrive driving-lesson marketplace",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Booking", "description": "Lesson booking wizard"},
        {"name": "Checkout", "description": "Hosted checkout relay and payments"},
        {"name": "Lessons", "description": "Agenda and schedule adjustments"},
        {"name": "Wallet", "description": "Student wallet"},
        {"name": "Instructors", "description": "Marketplace listings"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/bookings/drafts": {
            "post": {
                "tags": ["Booking"],
                "summary": "Start a booking draft",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StartDraftRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/drafts/{id}/dates": {
            "get": {
                "tags": ["Booking"],
                "summary": "Date step view",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/drafts/{id}/dates/toggle": {
            "post": {
                "tags": ["Booking"],
                "summary": "Select or deselect a lesson date",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleDateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Selection limit reached"}
                }
            }
        },
        "/bookings/drafts/{id}/month": {
            "post": {
                "tags": ["Booking"],
                "summary": "Move the calendar a month back or forward",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ShiftMonthRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/drafts/{id}/dates/proceed": {
            "post": {
                "tags": ["Booking"],
                "summary": "Advance from dates to times",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Below minimum selection"}
                }
            }
        },
        "/bookings/drafts/{id}/times": {
            "get": {
                "tags": ["Booking"],
                "summary": "Time step view",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/drafts/{id}/times/toggle": {
            "post": {
                "tags": ["Booking"],
                "summary": "Select or deselect a time slot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleTimeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/drafts/{id}/times/active": {
            "post": {
                "tags": ["Booking"],
                "summary": "Switch the date shown in the time step",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetActiveDateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/drafts/{id}/times/proceed": {
            "post": {
                "tags": ["Booking"],
                "summary": "Advance from times to review",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Time slots missing"}
                }
            }
        },
        "/bookings/drafts/{id}/review": {
            "get": {
                "tags": ["Booking"],
                "summary": "Review a priced booking draft",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Hourly rate unavailable"}
                }
            }
        },
        "/bookings/drafts/{id}/submit": {
            "post": {
                "tags": ["Booking"],
                "summary": "Submit a booking draft",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/drafts/{id}/summary.pdf": {
            "get": {
                "tags": ["Booking"],
                "summary": "Download the booking summary as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF document"}
                }
            }
        },
        "/bookings/drafts/{id}": {
            "delete": {
                "tags": ["Booking"],
                "summary": "Discard a booking draft",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Discarded"}
                }
            }
        },
        "/checkout/drafts/{draftId}/messages": {
            "post": {
                "tags": ["Checkout"],
                "summary": "Handle a message from the checkout page",
                "parameters": [
                    {"name": "draftId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckoutMessage"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown message kind"}
                }
            }
        },
        "/checkout/card/confirm": {
            "post": {
                "tags": ["Checkout"],
                "summary": "Confirm a tokenized card payment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConfirmCardRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/checkout/payments/{paymentId}/status": {
            "get": {
                "tags": ["Checkout"],
                "summary": "Poll a payment's status",
                "parameters": [
                    {"name": "paymentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/checkout/pix/email": {
            "post": {
                "tags": ["Checkout"],
                "summary": "Email the PIX copy-and-paste code",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PixEmailRequest"}}
                ],
                "responses": {
                    "204": {"description": "Sent"}
                }
            }
        },
        "/lessons/past": {
            "get": {
                "tags": ["Lessons"],
                "summary": "List past lessons",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lessons/upcoming": {
            "get": {
                "tags": ["Lessons"],
                "summary": "List upcoming lessons",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lessons/{id}/adjust": {
            "post": {
                "tags": ["Lessons"],
                "summary": "Propose a new slot for a confirmed lesson",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdjustLessonRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Inside the adjustment cutoff"}
                }
            }
        },
        "/wallet/balance": {
            "get": {
                "tags": ["Wallet"],
                "summary": "Wallet balance",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/wallet/transactions": {
            "get": {
                "tags": ["Wallet"],
                "summary": "Wallet transactions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/instructors": {
            "get": {
                "tags": ["Instructors"],
                "summary": "List approved instructors",
                "parameters": [
                    {"name": "state", "in": "query", "type": "string"},
                    {"name": "city", "in": "query", "type": "string"},
                    {"name": "neighborhoodTeach", "in": "query", "type": "string"},
                    {"name": "gender", "in": "query", "type": "string"},
                    {"name": "transmission", "in": "query", "type": "string"},
                    {"name": "engineType", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/instructors/{id}": {
            "get": {
                "tags": ["Instructors"],
                "summary": "Fetch one instructor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "StartDraftRequest": {
            "type": "object",
            "required": ["instructorId"],
            "properties": {
                "instructorId": {"type": "string"}
            }
        },
        "ToggleDateRequest": {
            "type": "object",
            "required": ["date"],
            "properties": {
                "date": {"type": "string", "example": "2026-09-15"}
            }
        },
        "ShiftMonthRequest": {
            "type": "object",
            "required": ["direction"],
            "properties": {
                "direction": {"type": "string", "enum": ["PREV", "NEXT"]}
            }
        },
        "ToggleTimeRequest": {
            "type": "object",
            "required": ["time"],
            "properties": {
                "date": {"type": "string"},
                "time": {"type": "string", "example": "08:00"}
            }
        },
        "SetActiveDateRequest": {
            "type": "object",
            "required": ["date"],
            "properties": {
                "date": {"type": "string"}
            }
        },
        "CheckoutMessage": {
            "type": "object",
            "required": ["kind"],
            "properties": {
                "kind": {"type": "string", "enum": ["DEVICE_ID", "ERROR", "CANCEL", "PIX_CREATE", "TOKEN"]},
                "deviceId": {"type": "string"},
                "message": {"type": "string"},
                "token": {"type": "string"},
                "paymentMethodId": {"type": "string"},
                "issuerId": {"type": "string"},
                "installments": {"type": "integer"}
            }
        },
        "ConfirmCardRequest": {
            "type": "object",
            "required": ["draftId", "token", "paymentMethodId", "issuerId", "installments"],
            "properties": {
                "draftId": {"type": "string"},
                "token": {"type": "string"},
                "paymentMethodId": {"type": "string"},
                "issuerId": {"type": "string"},
                "installments": {"type": "integer", "minimum": 1},
                "deviceId": {"type": "string"}
            }
        },
        "PixEmailRequest": {
            "type": "object",
            "required": ["paymentId"],
            "properties": {
                "paymentId": {"type": "string"}
            }
        },
        "AdjustLessonRequest": {
            "type": "object",
            "required": ["newDate", "newTime"],
            "properties": {
                "newDate": {"type": "string"},
                "newTime": {"type": "string"},
                "reason": {"type": "string"}
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
