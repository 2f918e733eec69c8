// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
)

// serverAddress is prepended to the path of each incoming request so that
// http.NewRequest accepts it; it never reaches the origin.
const serverAddress = "https://templet-playground.invalid"

func ProxyEventToHTTPRequest(req events.ALBTargetGroupRequest) (*http.Request, error) {
	decodedBody := []byte(req.Body)
	if req.IsBase64Encoded {
		base64Body, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, err
		}
		decodedBody = base64Body
	}

	path := req.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	path = serverAddress + path

	if len(req.QueryStringParameters) > 0 {
		values := url.Values{}
		for k, v := range req.QueryStringParameters {
			values.Add(k, v)
		}
		path += "?" + values.Encode()
	}

	httpRequest, err := http.NewRequest(
		strings.ToUpper(req.HTTPMethod),
		path,
		bytes.NewReader(decodedBody),
	)
	if err != nil {
		return nil, err
	}

	for h := range req.Headers {
		httpRequest.Header.Add(h, req.Headers[h])
	}

	return httpRequest, nil
}

// ProxyResponseWriter records a handler's response so it can be converted
// into an ALB target group response.
type ProxyResponseWriter struct {
	headers http.Header
	body    bytes.Buffer
	status  int
}

var _ http.ResponseWriter = &ProxyResponseWriter{}

func NewProxyResponseWriter() *ProxyResponseWriter {
	return &ProxyResponseWriter{
		headers: make(http.Header),
		status:  http.StatusOK,
	}
}

func (w *ProxyResponseWriter) Header() http.Header { return w.headers }

func (w *ProxyResponseWriter) Write(data []byte) (int, error) {
	return w.body.Write(data)
}

func (w *ProxyResponseWriter) WriteHeader(status int) { w.status = status }

func (w *ProxyResponseWriter) GetProxyResponse() (events.ALBTargetGroupResponse, error) {
	headers := map[string]string{}
	for h := range w.headers {
		headers[h] = w.headers.Get(h)
	}

	body := w.body.String()
	isBase64 := !utf8.ValidString(body)
	if isBase64 {
		body = base64.StdEncoding.EncodeToString(w.body.Bytes())
	}

	return events.ALBTargetGroupResponse{
		StatusCode:      w.status,
		Headers:         headers,
		Body:            body,
		IsBase64Encoded: isBase64,
	}, nil
}
