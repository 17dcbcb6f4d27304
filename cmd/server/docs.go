// Package main Prefabworks Server API
//
//	@title						Prefabworks Server API
//	@version					1.0
//	@description				Order fulfillment backend for the Prefabworks prefab construction platform
//
//	@contact.name				Prefabworks Support
//	@contact.email				support@prefabworks.io
//
//	@license.name				Proprietary
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"
//
//	@tag.name					Order
//	@tag.description			Order lifecycle and payment tracking
//
//	@tag.name					Product
//	@tag.description			Product catalog
//
//	@tag.name					Notification
//	@tag.description			Lifecycle notifications
package main
