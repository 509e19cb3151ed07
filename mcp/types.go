// Package mcp implements the JSON-RPC 2.0 framing and the protocol types
// of the Model Context Protocol subset this server speaks, exchanged as
// newline-delimited JSON.
package mcp

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// a wrapper to emulate a sum type: jsonrpcid = string | int
type jsonrpcid interface {
	isJSONRPCID()
}

// JSONRPCStringID a wrapper for JSON-RPC string IDs.
type JSONRPCStringID string

func (JSONRPCStringID) isJSONRPCID()      {}
func (id JSONRPCStringID) String() string { return string(id) }

// JSONRPCIntID a wrapper for JSON-RPC integer IDs.
type JSONRPCIntID int

func (JSONRPCIntID) isJSONRPCID()      {}
func (id JSONRPCIntID) String() string { return fmt.Sprintf("%d", id) }

func idFromInterface(idInterface any) (jsonrpcid, error) {
	switch id := idInterface.(type) {
	case string:
		return JSONRPCStringID(id), nil
	case float64:
		// json.Unmarshal decodes every JSON number as float64
		return JSONRPCIntID(int(id)), nil
	default:
		typ := reflect.TypeOf(id)
		return nil, fmt.Errorf("json-rpc ID (%v) is of unknown type (%v)", id, typ)
	}
}

//----------------------------------------
// REQUEST

// RPCRequest is a single inbound JSON-RPC 2.0 message. A request without
// an ID is a notification and never receives a response.
type RPCRequest struct {
	ID     jsonrpcid
	Method string
	Params json.RawMessage
}

// NewRPCRequest returns a request with the given id, method and params.
func NewRPCRequest(id jsonrpcid, method string, params json.RawMessage) RPCRequest {
	return RPCRequest{ID: id, Method: method, Params: params}
}

// UnmarshalJSON custom JSON unmarshaling due to jsonrpcid being string or int.
func (req *RPCRequest) UnmarshalJSON(data []byte) error {
	unsafeReq := struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      any             `json:"id"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params"`
	}{}
	if err := json.Unmarshal(data, &unsafeReq); err != nil {
		return err
	}
	req.Method = unsafeReq.Method
	req.Params = unsafeReq.Params
	if unsafeReq.ID == nil { // notification
		return nil
	}
	id, err := idFromInterface(unsafeReq.ID)
	if err != nil {
		return err
	}
	req.ID = id
	return nil
}

func (req RPCRequest) MarshalJSON() ([]byte, error) {
	if req.ID == nil {
		return json.Marshal(struct {
			JSONRPC string          `json:"jsonrpc"`
			Method  string          `json:"method"`
			Params  json.RawMessage `json:"params,omitempty"`
		}{
			JSONRPC: "2.0",
			Method:  req.Method,
			Params:  req.Params,
		})
	}
	return json.Marshal(struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      jsonrpcid       `json:"id"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params,omitempty"`
	}{
		JSONRPC: "2.0",
		ID:      req.ID,
		Method:  req.Method,
		Params:  req.Params,
	})
}

// IsNotification reports whether the request expects no response.
func (req RPCRequest) IsNotification() bool {
	return req.ID == nil
}

func (req RPCRequest) String() string {
	return fmt.Sprintf("RPCRequest{%s %s/%X}", req.ID, req.Method, req.Params)
}

//----------------------------------------
// RESPONSE

// RPCError is the error object of a JSON-RPC response. It is also a
// regular Go error.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (err RPCError) Error() string {
	const baseFormat = "RPC error %v - %s"
	if err.Data != "" {
		return fmt.Sprintf(baseFormat+": %s", err.Code, err.Message, err.Data)
	}
	return fmt.Sprintf(baseFormat, err.Code, err.Message)
}

// RPCResponse is a single outbound JSON-RPC 2.0 message.
type RPCResponse struct {
	ID     jsonrpcid
	Result json.RawMessage
	Error  *RPCError
}

// UnmarshalJSON custom JSON unmarshaling due to jsonrpcid being string or int.
func (resp *RPCResponse) UnmarshalJSON(data []byte) error {
	unsafeResp := &struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      any             `json:"id"`
		Result  json.RawMessage `json:"result,omitempty"`
		Error   *RPCError       `json:"error,omitempty"`
	}{}
	if err := json.Unmarshal(data, &unsafeResp); err != nil {
		return err
	}
	resp.Result = unsafeResp.Result
	resp.Error = unsafeResp.Error
	if unsafeResp.ID == nil {
		return nil
	}
	id, err := idFromInterface(unsafeResp.ID)
	if err != nil {
		return err
	}
	resp.ID = id
	return nil
}

func (resp RPCResponse) MarshalJSON() ([]byte, error) {
	if resp.ID == nil {
		// an unparseable request is answered with a null id, per the
		// JSON-RPC 2.0 spec
		return json.Marshal(struct {
			JSONRPC string          `json:"jsonrpc"`
			Result  json.RawMessage `json:"result,omitempty"`
			Error   *RPCError       `json:"error,omitempty"`
		}{
			JSONRPC: "2.0",
			Result:  resp.Result,
			Error:   resp.Error,
		})
	}
	return json.Marshal(struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      jsonrpcid       `json:"id"`
		Result  json.RawMessage `json:"result,omitempty"`
		Error   *RPCError       `json:"error,omitempty"`
	}{
		JSONRPC: "2.0",
		ID:      resp.ID,
		Result:  resp.Result,
		Error:   resp.Error,
	})
}

// NewRPCSuccessResponse returns a response carrying res as its result.
func NewRPCSuccessResponse(id jsonrpcid, res any) RPCResponse {
	var rawMsg json.RawMessage
	if res != nil {
		js, err := json.Marshal(res)
		if err != nil {
			return RPCInternalError(id, fmt.Errorf("error marshaling response: %w", err))
		}
		rawMsg = js
	}
	return RPCResponse{ID: id, Result: rawMsg}
}

// NewRPCErrorResponse returns a response carrying an error object.
func NewRPCErrorResponse(id jsonrpcid, code int, msg, data string) RPCResponse {
	return RPCResponse{
		ID:    id,
		Error: &RPCError{Code: code, Message: msg, Data: data},
	}
}

func (resp RPCResponse) String() string {
	if resp.Error == nil {
		return fmt.Sprintf("RPCResponse{%s %X}", resp.ID, resp.Result)
	}
	return fmt.Sprintf("RPCResponse{%s %v}", resp.ID, resp.Error)
}

// RPCParseError is returned for raw input that is not valid JSON. The id
// is null because it could not be detected.
func RPCParseError(err error) RPCResponse {
	return NewRPCErrorResponse(nil, -32700, "Parse error. Invalid JSON", err.Error())
}

// RPCInvalidRequestError is returned for JSON that is not a valid request
// object.
func RPCInvalidRequestError(id jsonrpcid, err error) RPCResponse {
	return NewRPCErrorResponse(id, -32600, "Invalid Request", err.Error())
}

// RPCMethodNotFoundError is returned for methods this server does not
// implement.
func RPCMethodNotFoundError(id jsonrpcid) RPCResponse {
	return NewRPCErrorResponse(id, -32601, "Method not found", "")
}

// RPCInvalidParamsError is returned for a known method called with
// unusable params.
func RPCInvalidParamsError(id jsonrpcid, err error) RPCResponse {
	return NewRPCErrorResponse(id, -32602, "Invalid params", err.Error())
}

// RPCInternalError is returned when the handler itself failed.
func RPCInternalError(id jsonrpcid, err error) RPCResponse {
	return NewRPCErrorResponse(id, -32603, "Internal error", err.Error())
}

// RPCServerError is returned for server-side failures outside the
// predefined JSON-RPC range.
func RPCServerError(id jsonrpcid, err error) RPCResponse {
	return NewRPCErrorResponse(id, -32000, "Server error", err.Error())
}
