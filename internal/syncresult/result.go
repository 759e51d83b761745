// Package syncresult defines the result descriptor returned by the search
// sync Lambda.
package syncresult

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// Messages returned to the caller.
const (
	MessageMissingConfig = "Missing env config"
	MessageModified      = "Index modified"
	MessageFailed        = "Error occurred updating index"
)

// Descriptor is the outcome of one invocation.
type Descriptor struct {
	StatusCode int
	Message    string
}

// MissingConfig is returned when required configuration is absent.
func MissingConfig() Descriptor {
	return Descriptor{StatusCode: http.StatusInternalServerError, Message: MessageMissingConfig}
}

// Modified is returned when the index call succeeded.
func Modified() Descriptor {
	return Descriptor{StatusCode: http.StatusOK, Message: MessageModified}
}

// Failed is returned for any failure after configuration was validated.
func Failed() Descriptor {
	return Descriptor{StatusCode: http.StatusInternalServerError, Message: MessageFailed}
}

// body is the JSON response body.
type body struct {
	Message string `json:"message"`
}

// Response renders the descriptor in API Gateway proxy response form.
func (d Descriptor) Response() events.APIGatewayProxyResponse {
	// Marshalling a struct holding one string cannot fail.
	b, _ := json.Marshal(body{Message: d.Message})
	return events.APIGatewayProxyResponse{
		StatusCode: d.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(b),
	}
}
