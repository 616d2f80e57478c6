// Package docs holds the OpenAPI description served under /swagger.
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
		"/menu": {
			"get": {
				"summary": "List available menu items",
				"tags": [
					"menu"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "lang",
						"in": "query",
						"type": "string"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/cart": {
			"get": {
				"summary": "Get the priced cart",
				"tags": [
					"cart"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "X-Session-ID",
						"in": "header",
						"type": "string",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"delete": {
				"summary": "Clear the cart",
				"tags": [
					"cart"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "X-Session-ID",
						"in": "header",
						"type": "string",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/cart/items": {
			"post": {
				"summary": "Add an item to the cart",
				"tags": [
					"cart"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "X-Session-ID",
						"in": "header",
						"type": "string",
						"required": false
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/AddCartItem"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Malformed request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/cart/items/{id}": {
			"patch": {
				"summary": "Change the quantity of a cart line",
				"tags": [
					"cart"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "X-Session-ID",
						"in": "header",
						"type": "string",
						"required": false
					},
					{
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/UpdateCartItem"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Malformed request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			},
			"delete": {
				"summary": "Remove a cart line",
				"tags": [
					"cart"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "X-Session-ID",
						"in": "header",
						"type": "string",
						"required": false
					},
					{
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/checkout": {
			"get": {
				"summary": "Get the checkout",
				"tags": [
					"checkout"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "X-Session-ID",
						"in": "header",
						"type": "string",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/checkout/delivery": {
			"put": {
				"summary": "Select delivery or pickup",
				"tags": [
					"checkout"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "X-Session-ID",
						"in": "header",
						"type": "string",
						"required": false
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/Delivery"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Malformed request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/checkout/customer": {
			"put": {
				"summary": "Store customer details",
				"tags": [
					"checkout"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "X-Session-ID",
						"in": "header",
						"type": "string",
						"required": false
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/Customer"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Malformed request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/checkout/fields/{field}/touch": {
			"post": {
				"summary": "Mark a field visited",
				"tags": [
					"checkout"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "X-Session-ID",
						"in": "header",
						"type": "string",
						"required": false
					},
					{
						"name": "field",
						"in": "path",
						"type": "string",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Malformed request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/checkout/payment-method": {
			"put": {
				"summary": "Select the payment method",
				"tags": [
					"checkout"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "X-Session-ID",
						"in": "header",
						"type": "string",
						"required": false
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/PaymentMethod"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Malformed request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"422": {
						"description": "Rejected by a business rule",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/checkout/continue": {
			"post": {
				"summary": "Move to the payment step",
				"tags": [
					"checkout"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "X-Session-ID",
						"in": "header",
						"type": "string",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"422": {
						"description": "Rejected by a business rule",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/checkout/back": {
			"post": {
				"summary": "Return to the details step",
				"tags": [
					"checkout"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "X-Session-ID",
						"in": "header",
						"type": "string",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/checkout/pay": {
			"post": {
				"summary": "Pay and place the order",
				"tags": [
					"checkout"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "X-Session-ID",
						"in": "header",
						"type": "string",
						"required": false
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/Pay"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"402": {
						"description": "Payment failed",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"422": {
						"description": "Rejected by a business rule",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/orders/{id}": {
			"get": {
				"summary": "Get an order confirmation",
				"tags": [
					"orders"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/payments/intents": {
			"post": {
				"summary": "Create a payment intent",
				"tags": [
					"payments"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "Idempotency-Key",
						"in": "header",
						"type": "string"
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/PaymentIntent"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Malformed request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"422": {
						"description": "Rejected by a business rule",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/admin/orders": {
			"get": {
				"summary": "List orders",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "scope",
						"in": "query",
						"type": "string",
						"enum": [
							"all",
							"paid",
							"active"
						]
					},
					{
						"name": "status",
						"in": "query",
						"type": "array",
						"items": {
							"type": "string"
						},
						"collectionFormat": "multi"
					},
					{
						"name": "limit",
						"in": "query",
						"type": "integer"
					},
					{
						"name": "offset",
						"in": "query",
						"type": "integer"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Malformed request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/admin/orders/{id}": {
			"get": {
				"summary": "Get an order",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/admin/orders/{id}/status": {
			"patch": {
				"summary": "Update the order status",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/Status"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Malformed request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/admin/orders/{id}/payment": {
			"patch": {
				"summary": "Update the payment status",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/Status"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Malformed request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/admin/orders/{id}/notes": {
			"post": {
				"summary": "Add a staff note",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/Note"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"422": {
						"description": "Rejected by a business rule",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/admin/orders/{id}/driver": {
			"put": {
				"summary": "Assign or unassign a driver",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/AssignDriver"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"422": {
						"description": "Rejected by a business rule",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/admin/drivers": {
			"get": {
				"summary": "List drivers",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "available",
						"in": "query",
						"type": "boolean"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"post": {
				"summary": "Add a driver",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/Driver"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Malformed request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"422": {
						"description": "Rejected by a business rule",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/admin/drivers/{id}": {
			"patch": {
				"summary": "Update a driver",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/UpdateDriver"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Malformed request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"422": {
						"description": "Rejected by a business rule",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			},
			"delete": {
				"summary": "Remove a driver",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/admin/menu": {
			"get": {
				"summary": "List all menu items",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"post": {
				"summary": "Add a menu item",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/MenuItem"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Malformed request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"422": {
						"description": "Rejected by a business rule",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/admin/menu/{id}": {
			"patch": {
				"summary": "Update a menu item",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/MenuItem"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Malformed request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"422": {
						"description": "Rejected by a business rule",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			},
			"delete": {
				"summary": "Delete a menu item",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/admin/menu/{id}/toggle": {
			"post": {
				"summary": "Toggle menu item availability",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/admin/settings": {
			"get": {
				"summary": "Get restaurant settings",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"patch": {
				"summary": "Update restaurant settings",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/Settings"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Malformed request",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"422": {
						"description": "Rejected by a business rule",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/admin/settings/reset": {
			"post": {
				"summary": "Reset restaurant settings",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		}
	},
	"definitions": {
		"Error": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"fields": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				}
			}
		},
		"AddCartItem": {
			"type": "object",
			"properties": {
				"itemId": {
					"type": "string"
				},
				"quantity": {
					"type": "integer"
				}
			},
			"required": [
				"itemId"
			]
		},
		"UpdateCartItem": {
			"type": "object",
			"properties": {
				"delta": {
					"type": "integer"
				}
			},
			"required": [
				"delta"
			]
		},
		"Delivery": {
			"type": "object",
			"properties": {
				"deliveryType": {
					"type": "string",
					"enum": [
						"delivery",
						"pickup"
					]
				}
			},
			"required": [
				"deliveryType"
			]
		},
		"Customer": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				},
				"address": {
					"type": "string"
				},
				"postalCode": {
					"type": "string"
				},
				"city": {
					"type": "string"
				},
				"notes": {
					"type": "string"
				},
				"language": {
					"type": "string"
				}
			}
		},
		"PaymentMethod": {
			"type": "object",
			"properties": {
				"paymentMethod": {
					"type": "string",
					"enum": [
						"ideal",
						"card",
						"cash",
						"bancontact"
					]
				}
			},
			"required": [
				"paymentMethod"
			]
		},
		"Pay": {
			"type": "object",
			"properties": {
				"paymentIntentId": {
					"type": "string"
				},
				"paymentToken": {
					"type": "string"
				}
			}
		},
		"PaymentIntent": {
			"type": "object",
			"properties": {
				"amount": {
					"type": "number"
				},
				"currency": {
					"type": "string"
				},
				"paymentMethod": {
					"type": "string"
				},
				"customerEmail": {
					"type": "string"
				},
				"customerName": {
					"type": "string"
				},
				"metadata": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				}
			},
			"required": [
				"amount"
			]
		},
		"Status": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				}
			},
			"required": [
				"status"
			]
		},
		"Note": {
			"type": "object",
			"properties": {
				"text": {
					"type": "string"
				},
				"author": {
					"type": "string"
				}
			},
			"required": [
				"text"
			]
		},
		"AssignDriver": {
			"type": "object",
			"properties": {
				"driverId": {
					"type": "string",
					"x-nullable": true
				}
			}
		},
		"Driver": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				}
			},
			"required": [
				"name"
			]
		},
		"UpdateDriver": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string",
					"enum": [
						"available",
						"busy",
						"offline"
					]
				},
				"activeDeliveries": {
					"type": "integer"
				}
			}
		},
		"MenuItem": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"category": {
					"type": "string"
				},
				"price": {
					"type": "number"
				},
				"names": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				},
				"descriptions": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				},
				"image": {
					"type": "string"
				},
				"isAvailable": {
					"type": "boolean"
				}
			}
		},
		"Settings": {
			"type": "object",
			"properties": {
				"restaurantName": {
					"type": "string"
				},
				"restaurantAddress": {
					"type": "string"
				},
				"restaurantPhone": {
					"type": "string"
				},
				"deliveryFee": {
					"type": "number"
				},
				"freeDeliveryFrom": {
					"type": "number"
				},
				"minOrderAmount": {
					"type": "number"
				},
				"estimatedDeliveryMinutes": {
					"type": "integer"
				},
				"estimatedPickupMinutes": {
					"type": "integer"
				},
				"acceptingOrders": {
					"type": "boolean"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Storefront API",
	Description:      "Menu, cart, checkout and staff order management of the restaurant storefront.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
