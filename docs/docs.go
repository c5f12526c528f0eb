// Package docs Avenue City Police API.
//
// Documentation of the Avenue City Police arrest reporting API.
//
//	Schemes: https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
//	Security:
//	- basic
//	- bearer
//
//	SecurityDefinitions:
//	basic:
//	  type: basic
//	bearer:
//	  type: apiKey
//	  name: Authorization
//	  in: header
//
// swagger:meta
package docs

import (
	"github.com/linesmerrill/avenue-police-api/api/handlers"
	"github.com/linesmerrill/avenue-police-api/models"
	"github.com/linesmerrill/avenue-police-api/reports"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/auth/token auth createToken
// Exchanges a passport and password (basic auth) for a bearer token.
// responses:
//   200: tokenResponse
//   401: errorResponse

// An access token and the officer it belongs to
// swagger:response tokenResponse
type tokenResponseWrapper struct {
	// in:body
	Body models.Token
}

// swagger:route GET /api/v1/statutes statutes listStatutes
// Lists the penal code in display order.
// responses:
//   200: statutesResponse

// The penal code reference table
// swagger:response statutesResponse
type statutesResponseWrapper struct {
	// in:body
	Body []models.StatuteViolation
}

// swagger:route POST /api/v1/arrests/preview arrests previewArrest
// Computes the totals of a draft report without filing it.
// responses:
//   200: previewResponse
//   400: errorResponse

// swagger:parameters previewArrest createArrest
type arrestRequestWrapper struct {
	// in:body
	Body handlers.ArrestRequest
}

// Totals and reductions for the selected violations
// swagger:response previewResponse
type previewResponseWrapper struct {
	// in:body
	Body handlers.ArrestPreview
}

// swagger:route POST /api/v1/arrests arrests createArrest
// Files an arrest report. The report number is assigned by the server.
// responses:
//   201: arrestReportResponse
//   400: validationErrorResponse

// A filed arrest report
// swagger:response arrestReportResponse
type arrestReportResponseWrapper struct {
	// in:body
	Body models.ArrestReport
}

// The field that failed validation
// swagger:response validationErrorResponse
type validationErrorResponseWrapper struct {
	// in:body
	Body handlers.ValidationErrorResponse
}

// swagger:route GET /api/v1/reports/dashboard reports dashboard
// Aggregates the arrest reports for the requested period, officer and search.
// responses:
//   200: dashboardResponse

// Everything the reports screen shows
// swagger:response dashboardResponse
type dashboardResponseWrapper struct {
	// in:body
	Body reports.Dashboard
}

// swagger:parameters dashboard listArrests
type reportFilterParams struct {
	// ALL, CURRENT_MONTH or PREVIOUS_MONTH
	// in:query
	Period string `json:"period"`
	// officer passport, or all
	// in:query
	Officer string `json:"officer"`
	// in:query
	Search string `json:"search"`
}

// swagger:route GET /api/v1/arrests arrests listArrests
// Lists arrest reports in report number order.
// responses:
//   200: arrestReportsResponse

// Arrest reports matching the filters
// swagger:response arrestReportsResponse
type arrestReportsResponseWrapper struct {
	// in:body
	Body []models.ArrestReport
}

// An error message
// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}

// swagger:route PATCH /api/v1/officers/me officers updateProfile
// Updates the caller's own profile photo, age or rank.
// responses:
//   200: officerResponse
//   400: errorResponse
//   404: errorResponse

// swagger:parameters updateProfile
type profileRequestWrapper struct {
	// in:body
	Body handlers.ProfileRequest
}

// An officer on the roster, without the password hash
// swagger:response officerResponse
type officerResponseWrapper struct {
	// in:body
	Body models.User
}
