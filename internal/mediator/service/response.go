package service

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"paymediator/internal/mediator/models"
	dErrors "paymediator/pkg/domain-errors"
)

// handlerResponseSchema is the minimum a handler must answer requestPayment
// with. Extra members are ignored.
const handlerResponseSchema = `{
  "type": "object",
  "required": ["methodName", "details"],
  "properties": {
    "methodName": {"type": "string", "minLength": 1},
    "details": {"type": "object"}
  }
}`

var handlerResponseLoader = gojsonschema.NewStringLoader(handlerResponseSchema)

type handlerResponse struct {
	MethodName string         `json:"methodName"`
	Details    map[string]any `json:"details"`
}

// toPaymentResponse validates the handler's raw answer and converts it.
func toPaymentResponse(requestID string, raw json.RawMessage) (*models.PaymentResponse, error) {
	if len(raw) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidResponse, "payment handler returned no response")
	}
	result, err := gojsonschema.Validate(handlerResponseLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidResponse, "payment handler response is not valid JSON")
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return nil, dErrors.New(dErrors.CodeInvalidResponse,
			"invalid payment handler response: "+strings.Join(problems, "; "))
	}

	var hr handlerResponse
	if err := json.Unmarshal(raw, &hr); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidResponse, "payment handler response could not be decoded")
	}
	return &models.PaymentResponse{
		RequestID:  requestID,
		MethodName: hr.MethodName,
		Details:    hr.Details,
	}, nil
}
