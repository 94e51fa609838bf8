// Package docs registers the OpenAPI document served under /swagger/. It mirrors the
// swag annotations on the handlers.
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
		"/": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Service"
				],
				"summary": "Service information",
				"responses": {
					"200": {
						"description": "Service name, version and resource path",
						"schema": {
							"$ref": "#/definitions/dto.IndexResponse"
						}
					}
				}
			}
		},
		"/health": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Service"
				],
				"summary": "Health check",
				"responses": {
					"200": {
						"description": "Service and database are reachable",
						"schema": {
							"$ref": "#/definitions/dto.HealthResponse"
						}
					},
					"503": {
						"description": "Database is unreachable",
						"schema": {
							"$ref": "#/definitions/dto.HealthResponse"
						}
					}
				}
			}
		},
		"/customers": {
			"get": {
				"description": "Lists every customer, or only the exact matches of one filter. When several filters are given first_name wins over last_name, which wins over userid.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Customers"
				],
				"summary": "List customers",
				"parameters": [
					{
						"type": "string",
						"description": "Exact first name",
						"name": "first_name",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Exact last name",
						"name": "last_name",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Exact userid",
						"name": "userid",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "List of customers",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/dto.CustomerResponse"
							}
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"description": "Creates a customer and its addresses in one unit of work. active defaults to true.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Customers"
				],
				"summary": "Create a customer",
				"parameters": [
					{
						"description": "Customer payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CustomerRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Customer created",
						"schema": {
							"$ref": "#/definitions/dto.CustomerResponse"
						},
						"headers": {
							"Location": {
								"type": "string",
								"description": "/customers/{customerID}"
							}
						}
					},
					"400": {
						"description": "Invalid payload or userid already taken",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"415": {
						"description": "Content-Type is not application/json",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/customers/{customerID}": {
			"get": {
				"description": "Returns one customer together with its addresses.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Customers"
				],
				"summary": "Retrieve a customer",
				"parameters": [
					{
						"type": "integer",
						"minimum": 1,
						"description": "Customer ID",
						"name": "customerID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "Customer details",
						"schema": {
							"$ref": "#/definitions/dto.CustomerResponse"
						}
					},
					"400": {
						"description": "Invalid customer ID format",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Customer not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"put": {
				"description": "Replaces first_name and last_name, copies userid, password and active when present and appends any addresses in the payload.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Customers"
				],
				"summary": "Update a customer",
				"parameters": [
					{
						"type": "integer",
						"minimum": 1,
						"description": "Customer ID",
						"name": "customerID",
						"in": "path",
						"required": true
					},
					{
						"description": "Customer payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CustomerRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "Customer updated",
						"schema": {
							"$ref": "#/definitions/dto.CustomerResponse"
						}
					},
					"400": {
						"description": "Invalid payload or userid already taken",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Customer not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"415": {
						"description": "Content-Type is not application/json",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"description": "Deletes the customer and all of its addresses. Deleting an unknown customer is a no-op.",
				"tags": [
					"Customers"
				],
				"summary": "Delete a customer",
				"parameters": [
					{
						"type": "integer",
						"minimum": 1,
						"description": "Customer ID",
						"name": "customerID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "Customer deleted or did not exist"
					},
					"400": {
						"description": "Invalid customer ID format",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/customers/{customerID}/activate": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Customers"
				],
				"summary": "Activate a customer",
				"parameters": [
					{
						"type": "integer",
						"minimum": 1,
						"description": "Customer ID",
						"name": "customerID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "Customer activated",
						"schema": {
							"$ref": "#/definitions/dto.CustomerResponse"
						}
					},
					"404": {
						"description": "Customer not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/customers/{customerID}/deactivate": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Customers"
				],
				"summary": "Deactivate a customer",
				"parameters": [
					{
						"type": "integer",
						"minimum": 1,
						"description": "Customer ID",
						"name": "customerID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "Customer deactivated",
						"schema": {
							"$ref": "#/definitions/dto.CustomerResponse"
						}
					},
					"404": {
						"description": "Customer not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/customers/{customerID}/addresses": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Addresses"
				],
				"summary": "List a customer's addresses",
				"parameters": [
					{
						"type": "integer",
						"minimum": 1,
						"description": "Customer ID",
						"name": "customerID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "Addresses in insertion order",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/dto.AddressResponse"
							}
						}
					},
					"404": {
						"description": "Customer not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Addresses"
				],
				"summary": "Add an address to a customer",
				"parameters": [
					{
						"type": "integer",
						"minimum": 1,
						"description": "Customer ID",
						"name": "customerID",
						"in": "path",
						"required": true
					},
					{
						"description": "Address payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.AddressRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Address created",
						"schema": {
							"$ref": "#/definitions/dto.AddressResponse"
						},
						"headers": {
							"Location": {
								"type": "string",
								"description": "/customers/{customerID}/addresses/{addressID}"
							}
						}
					},
					"400": {
						"description": "Invalid payload",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Customer not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"415": {
						"description": "Content-Type is not application/json",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/customers/{customerID}/addresses/{addressID}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Addresses"
				],
				"summary": "Retrieve one address of a customer",
				"parameters": [
					{
						"type": "integer",
						"minimum": 1,
						"description": "Customer ID",
						"name": "customerID",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"minimum": 1,
						"description": "Address ID",
						"name": "addressID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "Address details",
						"schema": {
							"$ref": "#/definitions/dto.AddressResponse"
						}
					},
					"404": {
						"description": "Customer or address not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"put": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Addresses"
				],
				"summary": "Update one address of a customer",
				"parameters": [
					{
						"type": "integer",
						"minimum": 1,
						"description": "Customer ID",
						"name": "customerID",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"minimum": 1,
						"description": "Address ID",
						"name": "addressID",
						"in": "path",
						"required": true
					},
					{
						"description": "Address payload",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.AddressRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "Address updated",
						"schema": {
							"$ref": "#/definitions/dto.AddressResponse"
						}
					},
					"400": {
						"description": "Invalid payload",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Customer or address not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"415": {
						"description": "Content-Type is not application/json",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"Addresses"
				],
				"summary": "Remove one address from a customer",
				"parameters": [
					{
						"type": "integer",
						"minimum": 1,
						"description": "Customer ID",
						"name": "customerID",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"minimum": 1,
						"description": "Address ID",
						"name": "addressID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "Address removed"
					},
					"404": {
						"description": "Customer or address not found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"dto.AddressRequest": {
			"type": "object",
			"required": [
				"city",
				"postal_code",
				"state",
				"street"
			],
			"properties": {
				"street": {
					"type": "string",
					"example": "1 Main St"
				},
				"city": {
					"type": "string",
					"example": "New York"
				},
				"state": {
					"type": "string",
					"example": "NY"
				},
				"postal_code": {
					"type": "string",
					"example": "10001"
				}
			}
		},
		"dto.AddressResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer",
					"example": 7
				},
				"customer_id": {
					"type": "integer",
					"example": 1
				},
				"street": {
					"type": "string",
					"example": "1 Main St"
				},
				"city": {
					"type": "string",
					"example": "New York"
				},
				"state": {
					"type": "string",
					"example": "NY"
				},
				"postal_code": {
					"type": "string",
					"example": "10001"
				}
			}
		},
		"dto.CustomerRequest": {
			"type": "object",
			"required": [
				"first_name",
				"last_name"
			],
			"properties": {
				"first_name": {
					"type": "string",
					"example": "Jash"
				},
				"last_name": {
					"type": "string",
					"example": "Doshi"
				},
				"userid": {
					"type": "string",
					"example": "jd1"
				},
				"password": {
					"type": "string",
					"example": "p"
				},
				"active": {
					"type": "boolean",
					"example": true
				},
				"addresses": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.AddressRequest"
					}
				}
			}
		},
		"dto.CustomerResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer",
					"example": 1
				},
				"first_name": {
					"type": "string",
					"example": "Jash"
				},
				"last_name": {
					"type": "string",
					"example": "Doshi"
				},
				"userid": {
					"type": "string",
					"example": "jd1"
				},
				"password": {
					"type": "string",
					"example": "p"
				},
				"active": {
					"type": "boolean",
					"example": true
				},
				"addresses": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.AddressResponse"
					}
				}
			}
		},
		"dto.ErrorDetail": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string",
					"example": "VALIDATION_ERROR"
				},
				"message": {
					"type": "string",
					"example": "Invalid Customer: missing first_name"
				},
				"field": {
					"type": "string",
					"example": "first_name"
				}
			}
		},
		"dto.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"$ref": "#/definitions/dto.ErrorDetail"
				}
			}
		},
		"dto.HealthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string",
					"example": "ok"
				}
			}
		},
		"dto.IndexResponse": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string",
					"example": "Customer REST API Service"
				},
				"version": {
					"type": "string",
					"example": "1.0"
				},
				"paths": {
					"type": "string",
					"example": "/customers"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Customer REST API Service",
	Description:      "CRUD service for customers and their addresses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
